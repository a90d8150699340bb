// Package mockdom provides the fixture documents that the harness serves to the browser
// test service: child-window pages and iframe host pages with a controlled HTML5
// structure, so geometry and document-structure tests always operate on known markup.
package mockdom
