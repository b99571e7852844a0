package constant

import "time"

const (
	MAX_FILE_SIZE       = 5 * 1024 * 1024
	MAX_IMAGE_DIMENSION = 1080

	MAX_POST_CONTENT_LENGTH   = 5000
	MAX_CREATOR_NAME_LENGTH   = 255
	MAX_PET_NAME_LENGTH       = 255
	LISTING_STATUS_AVAILABLE  = "Available"
	DEFAULT_FEED_STATE_TTL    = 7 * 24 * time.Hour
	FEED_STATE_UPDATE_RETRIES = 10
)

// Placeholder identity stamped on replies written through the feed.
const (
	VIEWER_NAME   = "You"
	VIEWER_AVATAR = "https://i.pravatar.cc/150?u=you"
)

// Reactions offered by the comment reaction picker. Any other symbol is still accepted.
var DefaultReactions = []string{"👍", "❤️", "😂", "😮", "😢", "👏"}
