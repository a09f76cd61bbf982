// Package format converts raw backend values into display strings.
//
// Numbers arrive from the advisor API as JSON numbers, numeric strings, or
// empty strings (the backend fills missing CSV cells with ""). Currency and
// Percent accept the raw textual form and render it with one decimal place;
// anything that does not start with a number renders as "-".
//
// Sanitize is applied to every piece of backend or user text before it is
// placed into a rendered surface so that escape sequences embedded in item
// names cannot repaint the terminal.
package format
