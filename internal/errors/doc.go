// Package errors provides coded, actionable errors for the newtab CLI and
// server.
//
// Each error has a code (e.g., "E100") registered with a category, a short
// message, a longer detail and a documentation URL. Callers attach a
// suggestion or wrap the underlying cause:
//
//	err := errors.New("E100").
//	    WithDetail("No newtab.json found in /srv/newtab").
//	    WithSuggestion("Create newtab.json or pass --config")
//
//	fmt.Print(err.Format())
//	// Output:
//	// ERROR E100: Configuration file not found
//	//
//	//   No newtab.json found in /srv/newtab
//	//
//	//   Hint: Create newtab.json or pass --config
//
// # Error Codes
//
//   - E100-E199: configuration
//   - E200-E299: experiment sources
//   - E300-E399: server and wire protocol
package errors
