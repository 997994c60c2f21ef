// Package core provides the business logic for exploring uploaded tables.
//
// This package contains the domain logic independent of any UI or transport
// layer. The web handlers are one frontend; tests drive it directly.
//
// # Pipeline
//
// An upload flows through four stages:
//
//  1. [LoadFile] parses CSV or XLSX bytes into a typed [Table]. CSV input is
//     wrapped with BOM skipping and UTF-8 sanitization first.
//  2. [Clean] reduces every textual value to its first whitespace token.
//  3. The cleaned table is stored per session in a [SessionStore], replacing
//     what that session held before.
//  4. Later requests read it back for [ComputeStatistic], [Summarize] or
//     [Visualize].
//
// [Service] ties the stages together and bounds concurrent uploads and
// chart renders with a [Limiter].
//
// # Chart Registry
//
// Chart kinds are registered at init time using [RegisterChart]. Each
// [ChartDefinition] names the kind, the labels a form may submit for it and
// the function that draws it:
//
//	core.RegisterChart(core.ChartDefinition{
//	    Info:   core.ChartInfo{Kind: "histogram", Label: "Histogram", Aliases: []string{"Histogramme"}, Axes: 1},
//	    Render: renderHistogram,
//	})
//
// # Error Handling
//
// Domain failures are sentinel errors ([ErrNoDataLoaded], [ErrInvalidColumn]
// and friends) wrapped with detail, plus [ParseError] for unreadable
// uploads. [MapError] turns any of them into a user-facing message with a
// code for support reference:
//
//   - FILE001-FILE006: File errors (size, format, empty)
//   - DATA001-DATA006: Data errors (nothing loaded, bad column, bad choice)
//   - UPL001-UPL004: Capacity and cancellation
//   - RATE001: Rate limiting
package core
