// Package pkg is the root of sorttrace's public packages.
//
// sorttrace records how merge sort and quicksort work through an input as an
// ordered sequence of steps. Traces can be pulled one step at a time, replayed
// backwards, counted, swept across many input sizes, and drawn as call trees.
//
// # Architecture
//
// The packages form three layers:
//
//   - Algorithms: [mergetrace], [quicktrace], [counting] and [bounds] hold the
//     sorting logic itself. They depend only on the standard library and on
//     [errors].
//   - Services: [sweep] measures comparison counts over a range of sizes,
//     [session] keeps live merge traces for remote clients, and [cache] stores
//     sweep reports and rendered trees in a file or in Redis.
//   - Surfaces: [render/calltree] turns traces into Graphviz graphs and
//     [server] exposes everything over a JSON HTTP API. The command line and
//     terminal animations live in internal/cli.
//
// # Quick Start
//
//	gen, _ := mergetrace.Begin([]int{3, 1, 2})
//	for ev, err := range gen.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(ev)
//	}
//
//	tr, _ := quicktrace.Build([]int{8, 3, 1, 7, 0, 10, 2})
//	cur := quicktrace.NewCursor(tr)
//	for {
//	    fmt.Println(cur.Current())
//	    if !cur.Next() {
//	        break
//	    }
//	}
//
// # Errors
//
// Every package reports failures through [errors], which attaches a stable
// [errors.Code] to each error. The CLI maps codes to exit statuses and the
// HTTP server maps them to status codes.
//
// [mergetrace]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/mergetrace
// [quicktrace]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/quicktrace
// [counting]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/counting
// [bounds]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/bounds
// [errors]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/errors
// [errors.Code]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/errors#Code
// [sweep]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/sweep
// [session]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/session
// [cache]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/cache
// [render/calltree]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/render/calltree
// [server]: https://pkg.go.dev/github.com/matzehuels/sorttrace/pkg/server
package pkg
