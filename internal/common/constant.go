package common

// JournalFileName is the name of the append-only diary log inside the data
// directory.
const JournalFileName = "entries.jsonl"

// MediaDirName is the directory (relative to the data directory) that holds
// downloaded photos when the local media backend is used.
const MediaDirName = "media"

// SentLayout is the layout of LoggedEntry.Sent values.
const SentLayout = "2006-01-02 15:04 UTC"

// DefaultReportWindow is the number of logged days shown by /report.
const DefaultReportWindow = 7
