// Package router is the public emit API of the pipeline. A Router binds a
// name and a severity threshold to an ordered handler list and dispatches
// either synchronously on the caller's goroutine or through a fanout.Queue.
//
// The two routers of the listing watcher look like this:
//
//	file, _ := handler.NewFile(handler.FileConfig{Dir: "logs", Name: "watch"})
//
//	diag := router.NewBuilder("main").
//	    WithLevel(router.DebugLevel).
//	    WithHandlers(handler.NewConsole(handler.ConsoleConfig{}), file).
//	    Build()
//
//	q := fanout.NewQueue(fanout.QueueConfig{},
//	    file,
//	    handler.NewChatAlert(sender, diag),
//	    handler.NewChatEscalation(sender, diag),
//	)
//	alerts := router.NewBuilder("alerts").WithQueue(q).Build()
//
//	alerts.Info("new listing", router.ToChat(), router.String("url", u))
//	alerts.Warn("search failed", router.SkipChat())
//
// The synchronous router guarantees the record is on disk before the call
// returns; the queued router never blocks the producer on gateway I/O.
package router
