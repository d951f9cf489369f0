package config

type WorkerKeyStruct struct {
	CheckAchievementsQueue string
	ActivityLogQueue       string
}

var WorkerKey = &WorkerKeyStruct{
	CheckAchievementsQueue: "check_achievements_queue",
	ActivityLogQueue:       "activity_log_queue",
}
