package av

import (
	"strings"
)

// Job is a request to transcode one source file into the HLS ladder.
type Job struct {
	FileName     string      `json:"fileName"`
	Orientation  Orientation `json:"orientation"`
	ExcludeAudio bool        `json:"excludeAudio"`
}

// Location is a bucket and a folder inside it, e.g. "s3://media" and
// "uploads".
type Location struct {
	Bucket string
	Path   string
}

// Join returns bucket/path/file. Components are joined verbatim.
func (l Location) Join(file string) string {
	return l.Bucket + "/" + l.Path + "/" + file
}

// Input is the full source location of the job's file.
func (j Job) Input(in Location) string {
	return in.Join(j.FileName)
}

// Output is the destination prefix of the job's HLS package. The name is
// cut at the first dot, so "a.b.mp4" yields ".../a".
func (j Job) Output(out Location) string {
	return out.Join(Basename(j.FileName))
}

// Basename returns name up to its first dot. A name without dots is
// returned unchanged.
func Basename(name string) string {
	if n := strings.Index(name, "."); n >= 0 {
		return name[:n]
	}
	return name
}
