// Package elements is the reference catalogue of element kinds.
//
//	app
//	└── window        (keypress)
//	    ├── view      (flow container, nests views, buttons and spans)
//	    ├── button    (click, hover; holds spans and text)
//	    └── span      (inline text container; holds text only)
//
// Window and View reject attribute keys they do not recognize. App, Button
// and Span ignore them.
package elements
