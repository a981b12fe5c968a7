// Package form drives the Blueprint validation form.
//
// A Controller wires an editor, a message banner, a results container and a
// diagram renderer to one Validator call. The page elements are injected as
// interfaces so the controller runs the same against the browser DOM
// (clients/wasm) and against fakes in tests.
//
// Submissions are not serialized: every Submit runs its request on its own
// goroutine and applies the outcome when it arrives, so with overlapping
// submissions the response that resolves last determines what is shown.
package form
