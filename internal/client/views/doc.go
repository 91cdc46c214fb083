// Package views contains the screen controllers of the terminal client and
// the two creation forms they host.
//
// A controller is mounted when its screen becomes current and unmounted when
// the user navigates away. Mount derives a context that Unmount cancels;
// every load is tagged with a generation so a response that arrives after
// unmount, or after a newer load started, is dropped instead of written to
// view state. Controllers never return request failures to the caller: they
// record a message that Render shows above whatever data was already
// loaded.
//
// Render writes plain text to an io.Writer and only fails when the writer
// does.
package views
