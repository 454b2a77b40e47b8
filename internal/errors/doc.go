// Package errors provides structured, coded errors for toastkit.
//
// The toast engine itself never fails: every misuse is a silent no-op. The
// errors here cover the edges where input arrives from outside the process,
// such as parsing a position name or decoding a message from a live client.
//
// # Error Categories
//
//   - validation: caller input that cannot be interpreted (unknown position)
//   - protocol: malformed or unroutable messages on the live transport
//   - render: failures turning a surface change into wire patches
//
// # Usage
//
//	err := errors.New("E201").
//	    WithDetail(`missing "hid" field`).
//	    Wrap(jsonErr)
//
//	fmt.Println(err.Format())
//	// ERROR E201: Malformed client message
//	//
//	//   missing "hid" field
//
// Errors compare by code, so errors.Is(err, errors.New("E201")) holds for
// every E201 error regardless of detail.
package errors
