// Package probe supplies ready-made network probe operations and target-list
// loading for the await orchestration core.
//
// The core stays I/O-free; this package is the collaborator that actually
// touches the network. [TCPCheck] and [HTTPCheck] build [await.Operation]
// values a caller can hand to await.Gather, await.Stream, or
// await.ProcessBatches. [LoadTargets] reads the JSON target file format used
// by the bdixprobe CLI.
package probe
