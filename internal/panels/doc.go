// Package panels loads the dashboard's table panels.
//
// Each loader fetches one advisor endpoint, applies its transform (crafting
// asks the server for a top-N, liquidity keeps the first rows, orders split
// into constant and one-time tables), and renders the result through the
// table engine. Loaders never share state, so one failing endpoint leaves
// its siblings untouched.
package panels
