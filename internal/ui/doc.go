// Package ui contains the Bubble Tea program that drives the accounting
// session. Model is the session controller: it owns every piece of session
// state and mutates it only from Update.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry keyed by message type.
//   - Key presses are normalized by KeyMap.Normalize into Input values and
//     applied one at a time by Dispatch. While a form is being edited every
//     printable rune is text; otherwise letters map to single-key intents.
//   - Navigation state (internal/ui/state.Navigation) remembers exactly one
//     prior screen. Form input accumulates in internal/ui/state.Collector.
//
// Synchronization:
//   - Entering a list, paging and form submission call the gateway on the
//     event loop and wait for the answer.
//   - Refresh runs as a tea.Cmd launched through internal/ui/command. The
//     command holds only the gateway, kind and page; its datasync.Result comes
//     back as a message and is applied by internal/data/dispatcher, which
//     drops results for lists no longer on screen.
//
// Backend interactions:
//   - A backend.Watcher polls the credential store while unauthenticated and
//     emits refresh ticks. Update waits for those events and hands them to
//     applyBackendEvent.
package ui
