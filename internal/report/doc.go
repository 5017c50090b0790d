// Package report assembles an evaluation, its recommendations and the
// rolling history into one exportable document, and writes it out.
//
// Build captures the snapshot. Write dispatches on Format:
//   - json: indented JSON, the shape of the app's "export report" file
//   - xlsx: an Excel workbook with Summary, Memberships, Rules and History
//     sheets (excelize)
//   - prom: Prometheus text exposition, suitable for a node_exporter
//     textfile collector
//
// ParseProm reads a prom export back into metric families.
package report
