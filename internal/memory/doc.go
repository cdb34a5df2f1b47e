// Package memory bounds heap growth while images are decoded.
//
// Decoded microscopy frames are large (a 2048x2048 16-bit TIFF is 8 MiB as a
// Gray16 raster and more once converted), so a run over thousands of files
// can exceed a container limit well before the table is built.
//
// [ConfigureFromEnv] sets the runtime soft limit from GOMEMLIMIT, or from
// MEMORY_LIMIT scaled by MEMORY_RATIO (default 0.85), and should be called
// early in main:
//
//	memory.ConfigureFromEnv()
//
// A [Monitor] samples heap usage and gives the image loader backpressure:
// each load calls WaitIfPaused, which blocks while usage is above
// PauseWaterMark and resumes once it drops below ResumeWaterMark.
//
//	mon := memory.NewMonitor(memory.DefaultConfig())
//	mon.Start()
//	defer mon.Stop()
//
// Without any limit the monitor is disabled and never pauses.
//
// # Kubernetes
//
//	env:
//	- name: MEMORY_LIMIT
//	  valueFrom:
//	    resourceFieldRef:
//	      resource: limits.memory
package memory
