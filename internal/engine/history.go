package engine

// snapshot is the state captured before a push that moved tiles.
type snapshot struct {
	grid      Grid
	score     int
	gen       Generator
	direction Direction // The push that produced the next state
}

// history is a bounded double-ended queue of snapshots, newest at the front.
// The ring grows lazily up to limit; once full, the oldest entry is overwritten.
type history struct {
	buf   []snapshot
	head  int // Index of the newest entry in buf
	n     int
	limit int
}

func newHistory(limit int) history {
	return history{limit: limit}
}

// Len returns the number of retained snapshots.
func (h *history) Len() int {
	return h.n
}

// pushFront records s as the newest entry, evicting the oldest at capacity.
func (h *history) pushFront(s snapshot) {
	if h.limit <= 0 {
		return
	}
	if h.n == len(h.buf) && len(h.buf) < h.limit {
		h.grow()
	}
	h.head = (h.head - 1 + len(h.buf)) % len(h.buf)
	h.buf[h.head] = s
	if h.n < len(h.buf) {
		h.n++
	}
}

// popFront removes and returns the newest entry.
func (h *history) popFront() (snapshot, bool) {
	if h.n == 0 {
		return snapshot{}, false
	}
	s := h.buf[h.head]
	h.buf[h.head] = snapshot{}
	h.head = (h.head + 1) % len(h.buf)
	h.n--
	return s, true
}

// at returns the i-th newest entry (0 = newest).
func (h *history) at(i int) snapshot {
	return h.buf[(h.head+i)%len(h.buf)]
}

// grow doubles the ring (capped at limit), laying entries out newest-first from index 0.
func (h *history) grow() {
	size := len(h.buf) * 2
	if size == 0 {
		size = 1
	}
	if size > h.limit {
		size = h.limit
	}
	buf := make([]snapshot, size)
	for i := range h.n {
		buf[i] = h.at(i)
	}
	h.buf = buf
	h.head = 0
}

// directions lists the recorded push directions, newest first.
func (h *history) directions() []Direction {
	out := make([]Direction, h.n)
	for i := range h.n {
		out[i] = h.at(i).direction
	}
	return out
}
