// Package data provides the embedded dataset files used by parameterized browser tests,
// and converts them into btest datasets.
package data

import (
	"embed"
	"fmt"
	"path"
)

//go:embed data-files
var dataFilesRoot embed.FS

const dataBasePath = "data-files"

// SourceInfo represents JSON or YAML data that was read from a dataset file.
type SourceInfo struct {
	FilePath string
	BaseName string
	Data     []byte
}

func (s SourceInfo) ParseInto(target interface{}) error {
	if err := ParseJSONOrYAML(s.Data, target); err != nil {
		return fmt.Errorf("error parsing %q: %w", s.BaseName, err)
	}
	return nil
}

// LoadDataFile reads a dataset file.
//
// The path parameter is relative to data/data-files.
func LoadDataFile(filePath string) (SourceInfo, error) {
	data, err := dataFilesRoot.ReadFile(path.Join(dataBasePath, filePath))
	if err != nil {
		return SourceInfo{}, fmt.Errorf("failed to read %q: %w", filePath, err)
	}
	return SourceInfo{
		FilePath: filePath,
		BaseName: path.Base(filePath),
		Data:     data,
	}, nil
}

// LoadAllDataFiles reads all dataset files in a directory.
//
// The path parameter is relative to data/data-files.
func LoadAllDataFiles(dirPath string) ([]SourceInfo, error) {
	files, err := dataFilesRoot.ReadDir(path.Join(dataBasePath, dirPath))
	if err != nil {
		return nil, err
	}
	var ret []SourceInfo
	for _, file := range files {
		source, err := LoadDataFile(path.Join(dirPath, file.Name()))
		if err != nil {
			return nil, err
		}
		ret = append(ret, source)
	}
	return ret, nil
}
