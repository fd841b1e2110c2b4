package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"camera":    {"📷", "[IMG]"},
	"road":      {"🛣️", "[ROAD]"},
	"pothole":   {"🕳️", "[HOLE]"},
	"detect":    {"🔍", "[DET]"},
	"document":  {"📄", "[PDF]"},
	"email":     {"📧", "[MAIL]"},
	"compose":   {"✍️", "[TXT]"},
	"upload":    {"📤", "[UP]"},
	"download":  {"💾", "[SAVE]"},
	"success":   {"✅", "[OK]"},
	"error":     {"❌", "[ERR]"},
	"warning":   {"⚠️", "[WRN]"},
	"info":      {"ℹ️", "[INF]"},
	"count":     {"🔢", "[#]"},
	"busy":      {"⏳", "[...]"},
	"help":      {"❓", "[?]"},
	"door":      {"🚪", "[EXIT]"},
	"target":    {"🎯", "[>]"},
	"clear":     {"🧹", "[CLR]"},
	"carousel":  {"🖼️", "[VIEW]"},
	"drop":      {"📥", "[DROP]"},
	"statistic": {"📊", "[STATS]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
