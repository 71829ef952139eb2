package ui

import (
	"testing"

	"brisk/internal/buildpipeline"
)

func TestItemProgress_MonotoneAcrossStages(t *testing.T) {
	// The event order one file sees during a successful build.
	sequence := []fileItem{
		{status: "queued", stage: buildpipeline.StageSnapshot},
		{status: "measuring", stage: buildpipeline.StageSnapshot},
		{status: "done", stage: buildpipeline.StageSnapshot},
		{status: "cleaning", stage: buildpipeline.StageClean},
		{status: "done", stage: buildpipeline.StageClean},
		{status: "copying", stage: buildpipeline.StageCopy},
		{status: "done", stage: buildpipeline.StageCopy},
		{status: "bundling", stage: buildpipeline.StageBundle},
		{status: "done", stage: buildpipeline.StageBundle},
		{status: "reporting", stage: buildpipeline.StageReport},
		{status: "done", stage: buildpipeline.StageReport},
	}
	prev := -1.0
	for _, item := range sequence {
		got := itemProgress(item)
		if got < prev {
			t.Errorf("itemProgress(%s/%s) = %f, dropped below %f", item.status, item.stage, got, prev)
		}
		prev = got
	}
}

func TestItemProgress_IntermediateDoneIsNotFull(t *testing.T) {
	for _, stage := range []buildpipeline.Stage{
		buildpipeline.StageSnapshot,
		buildpipeline.StageClean,
		buildpipeline.StageCopy,
		buildpipeline.StageBundle,
	} {
		if got := itemProgress(fileItem{status: "done", stage: stage}); got >= 1.0 {
			t.Errorf("done at %s fills the bar: %f", stage, got)
		}
	}
	if got := itemProgress(fileItem{status: "done", stage: buildpipeline.StageReport}); got != 1.0 {
		t.Errorf("done at report = %f, want 1", got)
	}
}
