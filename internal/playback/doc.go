// Package playback advances through the yearly slices on a fixed cadence.
//
// A [Scheduler] owns the playback [State]. [Scheduler.Start] renders frame
// zero, and each [Scheduler.Step] advances one frame, wrapping to zero after
// the last, reconciles the scene against the new slice and notifies every
// [Observer]. Steps can be driven synchronously (tests, exporters) or by
// [Scheduler.Run] from a tick channel.
//
// # Example
//
//	s := playback.New(slices, rec, playback.WithStartYear(1800))
//	s.AddObserver(recorder)
//	_ = s.Run(ctx, playback.NewTicker(100*time.Millisecond).C)
package playback
