package game

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// messageDuration is how long ShowMessage keeps text on screen, in seconds.
const messageDuration = 3.0
