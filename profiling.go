package main

import (
	"github.com/pkg/profile"
)

type ProfileCategory string

const ProfileCPU ProfileCategory = "CPU"

var profiler interface {
	Stop()
}

func startProfiling(what ProfileCategory) {
	log(LogCatgApp, "starting %s profile", what)
	profiler = profile.Start(profile.ProfilePath("."))
}

func isProfiling() bool {
	return profiler != nil
}

func stopProfiling() {
	if isProfiling() {
		profiler.Stop()
		profiler = nil
	}
}
