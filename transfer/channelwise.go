package transfer

import (
	"colortrans/stats"

	"gonum.org/v1/gonum/mat"
)

// channelWise computes (content - mean(content)) * std(reference) / std(content) + mean(reference)
// with no mixing between channels. A constant content channel divides by zero.
func channelWise(content, reference *mat.Dense, o options) *mat.Dense {
	muContent := stats.Mean(content)
	muReference := stats.Mean(reference)
	stdContent := stats.StdDev(content)
	stdReference := stats.StdDev(reference)

	return channelMap(content, muContent, stdReference, stdContent, muReference, o.workers)
}
