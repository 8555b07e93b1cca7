// ABOUTME: Throttle input capture package
// ABOUTME: Bridges key holds or a synthetic sweep into a polled control value
// Package control feeds a throttle value in [0, 1] to a consumer at a fixed cadence.
//
// Two modes are chosen once, when Capture starts:
//   - Listener: a KeySource runs on its own goroutine and reports key
//     press/release. The held state maps to 1.0 or 0.0.
//   - Simulator: with no KeySource, the polling loop sweeps the value up and
//     down in fixed steps (a triangle wave).
//
// The polling loop runs on the caller's goroutine every Interval (20ms by
// default) until the context is cancelled.
//
// Example:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	err := control.Capture(ctx, engine, control.Options{Source: keys})
package control
