// Package download runs the queue worker: a single goroutine that takes jobs
// from the queue in FIFO order, hands each to a Downloader, and turns its
// progress callbacks into status updates while honouring pause and cancel.
package download
