// Package prompt conducts trials in a terminal. A Runner walks the
// descriptor's fields in order, asks for each answer through a PromptDriver,
// and submits the captured controls through a collector session until the
// submission passes validation or the participant aborts.
//
// The default driver is backed by survey. Tests and embedders swap in their
// own implementation via WithDriver.
package prompt
