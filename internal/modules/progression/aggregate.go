package progression

import "math"

// MissionCompletionThreshold is the mission-track completion bar, in
// percent. The video track completes at exactly 100 instead.
const MissionCompletionThreshold = 80.0

// SectionVideoAggregate is the video-track recomputation result for one
// (user, section) pair.
type SectionVideoAggregate struct {
	Percent     int
	IsCompleted bool
}

// AggregateSectionVideos computes floor(completed/total*100). A section
// with no videos yields 0 percent, never an error.
func AggregateSectionVideos(completedCount, totalCount int) SectionVideoAggregate {
	if totalCount <= 0 {
		return SectionVideoAggregate{}
	}
	percent := int(math.Floor(float64(completedCount) / float64(totalCount) * 100))
	return SectionVideoAggregate{
		Percent:     percent,
		IsCompleted: percent == 100,
	}
}

// CourseAggregate is the course-level recomputation result.
type CourseAggregate struct {
	Percent     int
	IsCompleted bool
}

// AggregateCourseSections computes floor(completedSections/total*100) over
// the per-user section completion flags.
func AggregateCourseSections(completedSections, totalSections int) CourseAggregate {
	if totalSections <= 0 {
		return CourseAggregate{}
	}
	percent := int(math.Floor(float64(completedSections) / float64(totalSections) * 100))
	return CourseAggregate{
		Percent:     percent,
		IsCompleted: percent == 100,
	}
}

// MissionAggregate is the mission-track recomputation result. ScorePercent
// is fractional; no rounding happens before the threshold comparison.
type MissionAggregate struct {
	ScorePercent float64
	IsCompleted  bool
}

// AggregateSectionMissions computes approved/distinctMissions*100 over the
// user's approved submissions. Zero distinct missions yields 0 percent.
func AggregateSectionMissions(approvedCount, distinctMissionCount int) MissionAggregate {
	if distinctMissionCount <= 0 {
		return MissionAggregate{}
	}
	percent := float64(approvedCount) / float64(distinctMissionCount) * 100
	return MissionAggregate{
		ScorePercent: percent,
		IsCompleted:  percent >= MissionCompletionThreshold,
	}
}
