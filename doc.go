// Package benchplot turns tabular benchmark results into charts.
//
//
// Data Representation: Tables
//
// A Table is a small column oriented data frame. Each column is a Field
// of type Int, Float or String. All values are stored as float64; String
// fields store the index of the value in the table's StringPool. Any
// cell may be missing (NA) which is different from zero.
//
// Tables are built from literal rows, from a slice of structs, from CSV
// files or from the output of `go test -bench`:
//     t, err := NewTableFromRows("jmh",
//         []string{"method", "size", "time_us"},
//         [][]interface{}{
//             {"hashMap", 10, 0.05},
//             {"treeMap", 10, 0.12},
//         })
//
// For a slice of structs exported fields and argument-less methods
// become columns:
//    func(m Measurement) BMI() float64 { return m.Weight / (m.Height * m.Height) }
//
//
// Transformations
//
// Merge concatenates several tables and records the key of the source
// table of each row in a provenance column. Annotate derives a column
// through a finite Mapping; keys without a mapping give missing cells
// or an error depending on the MissingPolicy. Group aggregates a table
// into one Series per category with one Point per distinct x value.
//
//
// Charts
//
// A Chart renders series with gonum.org/v1/plot as lines with markers,
// lines with error bars or grouped bars. Each axis may be linear,
// logarithmic or chosen automatically: LogAuto switches to a log scale
// if all values are positive and span at least AutoLogDecades decades.
// Save writes the chart as PNG, JPEG, TIFF, SVG, PDF or EPS; WriteCSV
// writes the underlying table.
//
//
// Logging
//
// Data problems which do not stop processing (missing columns in a
// merge, unknown lookup keys, dropped groups) are reported as warnings
// on Logger.
package benchplot
