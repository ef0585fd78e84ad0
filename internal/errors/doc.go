// Package errors provides structured, actionable errors for the scene engine
// and its tools.
//
// Every error carries a unique code (e.g. "E001") that maps to a category, a
// short message and a longer explanation. Construction call sites attach the
// element kind and attribute involved so the failure can be traced back to
// the offending builder call.
//
// # Error Categories
//
//   - construction: invalid builder calls (unsupported event, child or attribute)
//   - runtime: failures while driving a construction pass
//   - config: configuration loading and validation
//   - export: frame report export
//   - inspector: the live inspection server
//
// # Usage
//
//	err := errors.New("E001").
//	    WithKind("span").
//	    WithDetail("span does not accept click events").
//	    WithSuggestion("Wrap the span in a button")
//
//	fmt.Print(err.Format())
//	// Output:
//	// ERROR E001: Unsupported event kind
//	//
//	//   span
//	//
//	//   span does not accept click events
//	//
//	//   Hint: Wrap the span in a button
package errors
