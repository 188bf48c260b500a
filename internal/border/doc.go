// Package border computes group boundaries on a fixed raster and extracts
// the junction vertices of the resulting boundary graph.
//
// A cell is on a boundary when the seeds within the smoothing radius of its
// nearest seed belong to more than one group. [Field.Compute] classifies
// every cell in parallel over rows and records the contending pair in a
// [Mask]; [Extract] flood-fills that mask and reports the cells where the
// contending pair changes.
//
// [Engine] ties both passes to an owned mask and frame and rejects a trigger
// while another pass is running.
package border
