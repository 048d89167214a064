package storage

// Fixed kv keys. BackupKey holds the full-record backup, LegacyBackupKey the
// older price/note-only map that restore still accepts, LogsKey the activity
// log. Image blobs live under one ImageKey per ref.
const (
	BackupKey       = "inventory-backup"
	LegacyBackupKey = "inventoryData"
	LogsKey         = "inventory_logs"

	imageKeyPrefix = "image-"
)

func ImageKey(ref string) string {
	return imageKeyPrefix + ref
}

// ImageKeyPrefix is the prefix shared by all image keys, for ListKeys scans.
const ImageKeyPrefix = imageKeyPrefix
