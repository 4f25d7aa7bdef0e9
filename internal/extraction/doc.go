// Package extraction runs the per-item clip job.
//
// Extract is the unit of work the worker pool executes. It first consults the
// Guard (an existing <output>/<id>.mp4 means the item is done), then locates
// the source, then cuts either a single range straight into the final
// artifact or a sequence of segments under <output>/<id>/ that are joined by
// the concat demuxer. The final artifact is written under a hidden temp name
// and renamed into place, so its presence always marks finished work.
//
// Every failure is converted into an Outcome; nothing escapes to abort
// sibling items.
package extraction
