package session

// Snapshot is the state handed to presentation layers. Words is shared with
// the session and must be treated as read-only.
type Snapshot struct {
	Words       []string `json:"words"`
	WordIndex   int      `json:"currentWordIndex"`
	LetterIndex int      `json:"currentLetterIndex"`
	Errors      int      `json:"errors"`
	KeyPresses  int      `json:"totalKeyPresses"`
	ErrorRate   int      `json:"errorRate"`
	TimeLeft    int      `json:"timeLeft"`
	TimeLimit   int      `json:"timeLimit"`
	Phase       Phase    `json:"phase"`
	WPM         int      `json:"wpm"`
	LastKey     string   `json:"lastPressedKey,omitempty"`
	NextLetter  string   `json:"nextLetter,omitempty"`
}

// TimeTaken is the number of countdown seconds consumed.
func (s Snapshot) TimeTaken() int {
	return s.TimeLimit - s.TimeLeft
}

// Upcoming returns the current word and up to n-1 following words.
func (s Snapshot) Upcoming(n int) []string {
	if n <= 0 || s.WordIndex >= len(s.Words) {
		return nil
	}
	end := s.WordIndex + n
	if end > len(s.Words) {
		end = len(s.Words)
	}
	return s.Words[s.WordIndex:end]
}
