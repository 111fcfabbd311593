package evaluate

// Recommendation is the reduced verdict on a line.
type Recommendation string

const (
	Target Recommendation = "Target"
	Pass   Recommendation = "Pass"
)

// TargetThreshold is the number of passing rules, out of five, that makes a
// Target. It is the same for every category.
const TargetThreshold = 4

// Recommend reduces a rule pass count.
func Recommend(rulePassCount int) Recommendation {
	if rulePassCount >= TargetThreshold {
		return Target
	}
	return Pass
}

// CountPassed returns how many rules hold.
func CountPassed(rules []bool) int {
	n := 0
	for _, r := range rules {
		if r {
			n++
		}
	}
	return n
}
