package main

import (
	"fmt"
	"io"
	"time"

	"brisk/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	var printErr error
	if timings.Has(buildpipeline.StageBundle) {
		_, printErr = fmt.Fprintf(out, "bundled %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageBundle)))
		if printErr != nil {
			panic(printErr)
		}
	}
	prep := timings.Sum(buildpipeline.StageSnapshot, buildpipeline.StageClean, buildpipeline.StageCopy, buildpipeline.StageReport)
	if prep > 0 {
		_, printErr = fmt.Fprintf(out, "prepared %.1f ms\n", toMillis(prep))
		if printErr != nil {
			panic(printErr)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
