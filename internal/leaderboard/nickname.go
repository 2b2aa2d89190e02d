package leaderboard

// Nickname is the three-letter name being entered after a game. Each slot
// cycles through A-Z with wraparound.
type Nickname struct {
	letters [NameLength]byte
	cursor  int
}

// NewNickname returns "AAA" with the cursor on the first slot.
func NewNickname() Nickname {
	return Nickname{letters: [NameLength]byte{'A', 'A', 'A'}}
}

// Cursor returns the selected slot.
func (n Nickname) Cursor() int {
	return n.cursor
}

// Letter returns the letter in slot i.
func (n Nickname) Letter(i int) byte {
	return n.letters[i]
}

// Next moves the letter under the cursor forward, Z wraps to A.
func (n *Nickname) Next() {
	n.letters[n.cursor] = 'A' + (n.letters[n.cursor]-'A'+1)%26
}

// Prev moves the letter under the cursor backward, A wraps to Z.
func (n *Nickname) Prev() {
	n.letters[n.cursor] = 'A' + (n.letters[n.cursor]-'A'+25)%26
}

// Right selects the next slot, stopping at the last.
func (n *Nickname) Right() {
	if n.cursor < NameLength-1 {
		n.cursor++
	}
}

// Left selects the previous slot, stopping at the first.
func (n *Nickname) Left() {
	if n.cursor > 0 {
		n.cursor--
	}
}

// String returns the three letters.
func (n Nickname) String() string {
	return string(n.letters[:])
}
