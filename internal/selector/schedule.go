package selector

// Config holds the review intervals, in days, and the mastery cut-off.
type Config struct {
	ShortDays    int // mastered themes become due after this many days
	MediumDays   int
	LongDays     int
	MasteryScore int // session score out of 10 at which a theme counts as mastered
}

// DefaultConfig returns the standard schedule: one week, one month,
// three months, mastery at 8/10.
func DefaultConfig() Config {
	return Config{
		ShortDays:    7,
		MediumDays:   30,
		LongDays:     90,
		MasteryScore: 8,
	}
}

// Bucket is the review category a theme falls into.
type Bucket int

const (
	BucketNotDue Bucket = iota
	BucketShortRecall
	BucketMediumRecall
	BucketLongRecall
	BucketUnmastered
)

// precedence lists the selectable buckets from highest to lowest priority.
var precedence = []Bucket{
	BucketUnmastered,
	BucketLongRecall,
	BucketMediumRecall,
	BucketShortRecall,
}

// rank returns the position of b in precedence, or -1 when b is not
// selectable.
func rank(b Bucket) int {
	for i, p := range precedence {
		if p == b {
			return i
		}
	}
	return -1
}

// Due reports whether a theme in this bucket is eligible for selection.
func (b Bucket) Due() bool {
	return rank(b) >= 0
}

func (b Bucket) String() string {
	switch b {
	case BucketUnmastered:
		return "unmastered"
	case BucketLongRecall:
		return "long-recall"
	case BucketMediumRecall:
		return "medium-recall"
	case BucketShortRecall:
		return "short-recall"
	default:
		return "not-due"
	}
}
