// Package mp4probe reads video metadata from MP4 containers without decoding.
package mp4probe

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vidcompare/pkg/ports"
)

// Prober implements ports.Prober for MP4 files using mp4ff.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe reads the first video track of the MP4 file at path.
func (p *Prober) Probe(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("%w: %v", ports.ErrUnreadableFile, err)
	}
	defer f.Close()

	info, err := ProbeReader(f)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("%w: %s: %v", ports.ErrUnreadableFile, path, err)
	}
	info.Path = path
	return info, nil
}

// ProbeReader reads video metadata from an MP4 stream. Sample payloads in
// mdat boxes are skipped, not read.
func ProbeReader(reader io.ReadSeeker) (ports.VideoInfo, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	if mp4File.IsFragmented() {
		return probeFragmented(mp4File)
	}
	return probeProgressive(mp4File)
}

func probeProgressive(mp4File *mp4.File) (ports.VideoInfo, error) {
	if mp4File.Moov == nil {
		return ports.VideoInfo{}, fmt.Errorf("no moov box found")
	}
	trak := findVideoTrack(mp4File.Moov)
	if trak == nil {
		return ports.VideoInfo{}, fmt.Errorf("no video track found")
	}

	info := trackInfo(trak)

	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz == nil {
		return ports.VideoInfo{}, fmt.Errorf("no stsz box found")
	}
	info.FrameCount = int(stbl.Stsz.SampleNumber)

	var timescale uint32
	if trak.Mdia.Mdhd != nil {
		timescale = trak.Mdia.Mdhd.Timescale
	}

	// prefer the sample table over mdhd, which may include edit padding
	var ticks uint64
	if stbl.Stts != nil {
		for i, count := range stbl.Stts.SampleCount {
			ticks += uint64(count) * uint64(stbl.Stts.SampleTimeDelta[i])
		}
	}
	if ticks == 0 && trak.Mdia.Mdhd != nil {
		ticks = trak.Mdia.Mdhd.Duration
	}

	info.FrameRate = FrameRate(info.FrameCount, ticks, timescale)
	return info, nil
}

func probeFragmented(mp4File *mp4.File) (ports.VideoInfo, error) {
	if mp4File.Init == nil || mp4File.Init.Moov == nil {
		return ports.VideoInfo{}, fmt.Errorf("no init segment found")
	}
	moov := mp4File.Init.Moov
	trak := findVideoTrack(moov)
	if trak == nil {
		return ports.VideoInfo{}, fmt.Errorf("no video track found")
	}

	if trak.Tkhd == nil {
		return ports.VideoInfo{}, fmt.Errorf("no tkhd box found")
	}
	info := trackInfo(trak)
	trackID := trak.Tkhd.TrackID

	var trex *mp4.TrexBox
	if moov.Mvex != nil {
		for _, t := range moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var timescale uint32
	if trak.Mdia.Mdhd != nil {
		timescale = trak.Mdia.Mdhd.Timescale
	}

	var defaultDur uint32
	if trex != nil {
		defaultDur = trex.DefaultSampleDuration
	}

	// durations come from trun/tfhd/trex only, so lazily decoded mdat is enough
	var ticks uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				dur := defaultDur
				if traf.Tfhd.HasDefaultSampleDuration() {
					dur = traf.Tfhd.DefaultSampleDuration
				}
				for _, trun := range traf.Truns {
					for _, sample := range trun.Samples {
						info.FrameCount++
						if trun.HasSampleDuration() {
							ticks += uint64(sample.Dur)
						} else {
							ticks += uint64(dur)
						}
					}
				}
			}
		}
	}

	info.FrameRate = FrameRate(info.FrameCount, ticks, timescale)
	return info, nil
}

// findVideoTrack returns the first track with a "vide" handler and a sample table.
func findVideoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
			continue
		}
		return trak
	}
	return nil
}

// trackInfo extracts codec and dimensions from the sample description.
func trackInfo(trak *mp4.TrakBox) ports.VideoInfo {
	var info ports.VideoInfo
	stsd := trak.Mdia.Minf.Stbl.Stsd
	if stsd == nil || len(stsd.Children) == 0 {
		return info
	}
	entry := stsd.Children[0]
	info.Codec = CodecName(entry.Type())
	if vse, ok := entry.(*mp4.VisualSampleEntryBox); ok {
		info.Width = int(vse.Width)
		info.Height = int(vse.Height)
	}
	return info
}

// CodecName maps a sample entry type to a short codec name.
func CodecName(sampleEntry string) string {
	switch sampleEntry {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "hevc"
	case "av01":
		return "av1"
	case "vp08":
		return "vp8"
	case "vp09":
		return "vp9"
	default:
		return sampleEntry
	}
}

// FrameRate computes frames per second from a frame count and a track
// duration expressed in timescale ticks. It returns 0 when undefined.
func FrameRate(frames int, ticks uint64, timescale uint32) float64 {
	if frames <= 0 || ticks == 0 || timescale == 0 {
		return 0
	}
	seconds := float64(ticks) / float64(timescale)
	return float64(frames) / seconds
}

// Ensure Prober implements ports.Prober
var _ ports.Prober = (*Prober)(nil)
