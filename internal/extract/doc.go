/*
Package extract decodes acquisition metadata from microscopy filenames.

A filename such as

	s03z05ch01_Msmeg_DMN_60X.tif

carries six fields, each decoded by an independent first-match rule:

  - Slide:     tokens s00, s01, ... sNN (NN = SlideMax, inclusive)
  - ZStack:    tokens z00 ... zNN
  - Channel:   tokens ch00 ... chNN, falling back to "overlay"
  - Species:   configured vocabulary, in list order
  - Labeling:  configured vocabulary, in list order
  - Objective: configured vocabulary, case-insensitive

Numeric tokens are tried from index 0 upwards and the first substring hit
wins, so the configured maximum itself is searched (a ChannelMax of 3 tries
four tokens). Vocabulary rules stop at the first listed term that occurs in
the filename. When one term contains another (DMN and DMN2) the list order
decides the outcome; config.ExtractionConfig.Hazards reports such pairs.

A field with no match is recorded as the unknown sentinel, never skipped, so
every file always has six values. Each decision is passed to an Observer:
LogObserver writes DEBUG events and the metrics package counts outcomes.
*/
package extract
