package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dnflvus-wq/engTest-sub000/internal/config"
	"github.com/dnflvus-wq/engTest-sub000/internal/model"
	"github.com/dnflvus-wq/engTest-sub000/internal/repository"
)

// Tracked study actions. Counter rows and activity logs share these names.
const (
	ActionTTSClick           = "TTS_CLICK"
	ActionStudyPageVisit     = "STUDY_PAGE_VISIT"
	ActionExamPageVisit      = "EXAM_PAGE_VISIT"
	ActionHistoryPageVisit   = "HISTORY_PAGE_VISIT"
	ActionAnalyticsPageVisit = "ANALYTICS_PAGE_VISIT"
	ActionProgressPageVisit  = "PROGRESS_PAGE_VISIT"
	ActionVideoPlay          = "VIDEO_PLAY"
	ActionPDFDownload        = "PDF_DOWNLOAD"
	ActionVocabDownload      = "VOCAB_DOWNLOAD"
	ActionStudyRoundVisit    = "STUDY_ROUND_VISIT"
)

const (
	bookOneID = "BOOK1"
	bookTwoID = "BOOK2"
)

// AchievementCheckService evaluates the achievement catalog against a
// user's current stats. The achievement worker drives it off the check
// queue; unlocks are published per user over Redis Pub/Sub.
type AchievementCheckService struct {
	achievements *repository.AchievementRepository
	badges       *repository.BadgeRepository
	counters     *repository.CounterRepository
	logs         *repository.ActivityLogRepository
	metrics      *repository.MetricsRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewAchievementCheckService creates a new AchievementCheckService.
func NewAchievementCheckService(
	achievements *repository.AchievementRepository,
	badges *repository.BadgeRepository,
	counters *repository.CounterRepository,
	logs *repository.ActivityLogRepository,
	metrics *repository.MetricsRepository,
	rdb *redis.Client,
) *AchievementCheckService {
	return &AchievementCheckService{
		achievements: achievements,
		badges:       badges,
		counters:     counters,
		logs:         logs,
		metrics:      metrics,
		rdb:          rdb,
		log:          log.With().Str("component", "achievement_check_service").Logger(),
	}
}

// eventCategories maps a check event to the catalog categories it can
// advance. Legend and hidden achievements live under SPECIAL and are
// rechecked on every event.
func eventCategories(event string) []model.AchievementCategory {
	switch event {
	case model.CheckEventLogin:
		return []model.AchievementCategory{
			model.CategoryStreak, model.CategoryTime, model.CategorySpecial,
		}
	case model.CheckEventExamComplete:
		return []model.AchievementCategory{
			model.CategoryExam, model.CategoryScore, model.CategorySpeed,
			model.CategoryChallenge, model.CategoryStudy, model.CategoryVocab,
			model.CategorySpecial,
		}
	case model.CheckEventStudyAction:
		return []model.AchievementCategory{
			model.CategoryStudy, model.CategoryVocab, model.CategorySpecial,
		}
	default:
		return nil
	}
}

// RunCheck evaluates every achievement the event can advance and records
// unlocks and progress. Individual achievement failures are logged and
// skipped so one bad row cannot stall the queue.
func (s *AchievementCheckService) RunCheck(ctx context.Context, ev model.CheckEvent) error {
	categories := eventCategories(ev.Event)
	if len(categories) == 0 {
		s.log.Warn().Str("event", ev.Event).Msg("unknown check event")
		return nil
	}

	snap, err := s.buildSnapshot(ctx, ev.UserID)
	if err != nil {
		return err
	}

	unlocks, err := s.achievements.ListUnlocks(ctx, ev.UserID)
	if err != nil {
		return err
	}
	held := make(map[string]*model.Tier, len(unlocks))
	for _, ua := range unlocks {
		current, ok := held[ua.AchievementID]
		if !ok || tierIndex(ua.Tier) > tierIndex(current) {
			held[ua.AchievementID] = ua.Tier
		}
	}

	for _, category := range categories {
		achievements, err := s.achievements.ListByCategory(ctx, category)
		if err != nil {
			return err
		}
		for i := range achievements {
			a := &achievements[i]
			current, alreadyUnlocked := held[a.ID]
			res, ok := s.evaluate(a, snap, current)
			if !ok {
				continue
			}
			if !a.IsTiered && alreadyUnlocked {
				res.Unlocked = false
			}
			if res.Unlocked {
				if err := s.unlock(ctx, ev.UserID, a, res, current); err != nil {
					s.log.Error().Err(err).Str("achievement_id", a.ID).Msg("unlock failed")
					continue
				}
				held[a.ID] = res.Tier
			}
			if err := s.storeProgress(ctx, ev.UserID, a, res, held); err != nil {
				s.log.Error().Err(err).Str("achievement_id", a.ID).Msg("progress upsert failed")
			}
		}
	}
	return nil
}

// checkSnapshot holds one user's stats for a single check run.
type checkSnapshot struct {
	exams        []repository.ExamMetric
	ranks        []repository.RoundRank
	loginDates   []time.Time
	studyDates   []time.Time
	counters     map[string]int
	vocabLearned int
	bookOneDone  int
	bookOneTotal int
	bookTwoDone  int
	bookTwoTotal int
	goldOrAbove  int
	sameScore    int
	firstSubmits int
	closedRounds int
}

func (s *AchievementCheckService) buildSnapshot(ctx context.Context, userID int64) (*checkSnapshot, error) {
	snap := &checkSnapshot{counters: make(map[string]int)}

	var err error
	if snap.exams, err = s.metrics.ExamMetrics(ctx, userID); err != nil {
		return nil, err
	}
	if snap.ranks, err = s.metrics.RoundRanks(ctx, userID); err != nil {
		return nil, err
	}
	if snap.loginDates, err = s.metrics.LoginDates(ctx, userID); err != nil {
		return nil, err
	}
	if snap.studyDates, err = s.logs.ActiveDates(ctx, userID, ActionStudyPageVisit); err != nil {
		return nil, err
	}
	counters, err := s.counters.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range counters {
		snap.counters[c.Action] = c.Count
	}
	if snap.vocabLearned, err = s.metrics.VocabularyLearned(ctx, userID); err != nil {
		return nil, err
	}
	if snap.bookOneDone, err = s.metrics.CountCompletedChapters(ctx, userID, bookOneID); err != nil {
		return nil, err
	}
	if snap.bookOneTotal, err = s.metrics.CountChapters(ctx, bookOneID); err != nil {
		return nil, err
	}
	if snap.bookTwoDone, err = s.metrics.CountCompletedChapters(ctx, userID, bookTwoID); err != nil {
		return nil, err
	}
	if snap.bookTwoTotal, err = s.metrics.CountChapters(ctx, bookTwoID); err != nil {
		return nil, err
	}
	if snap.goldOrAbove, err = s.metrics.CountGoldOrAbove(ctx, userID); err != nil {
		return nil, err
	}
	if snap.sameScore, err = s.metrics.CountSameScoreExams(ctx, userID); err != nil {
		return nil, err
	}
	if snap.firstSubmits, err = s.metrics.CountFirstSubmissions(ctx, userID); err != nil {
		return nil, err
	}
	if snap.closedRounds, err = s.metrics.CountCompletedRoundsParticipated(ctx, userID); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *checkSnapshot) passed() int {
	n := 0
	for _, e := range c.exams {
		if e.IsPassed {
			n++
		}
	}
	return n
}

func (c *checkSnapshot) perfects() int {
	n := 0
	for _, e := range c.exams {
		if e.TotalCount > 0 && e.CorrectCount == e.TotalCount {
			n++
		}
	}
	return n
}

func (c *checkSnapshot) modeCount(mode model.ExamMode) int {
	n := 0
	for _, e := range c.exams {
		if e.Mode == mode {
			n++
		}
	}
	return n
}

func (c *checkSnapshot) maxCorrect() int {
	best := 0
	for _, e := range c.exams {
		if e.CorrectCount > best {
			best = e.CorrectCount
		}
	}
	return best
}

func (c *checkSnapshot) totalCorrect() int {
	sum := 0
	for _, e := range c.exams {
		sum += e.CorrectCount
	}
	return sum
}

// avgLast averages the correct counts of the newest n exams, 0 when the
// user has not finished n exams yet.
func (c *checkSnapshot) avgLast(n int) int {
	if len(c.exams) < n {
		return 0
	}
	sum := 0
	for _, e := range c.exams[len(c.exams)-n:] {
		sum += e.CorrectCount
	}
	return sum / n
}

func (c *checkSnapshot) passStreak() int {
	best, run := 0, 0
	for _, e := range c.exams {
		if e.IsPassed {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

func (c *checkSnapshot) scoreImprovement() int {
	if len(c.exams) < 2 {
		return 0
	}
	latest := c.exams[len(c.exams)-1].CorrectCount
	previous := c.exams[len(c.exams)-2].CorrectCount
	if latest > previous {
		return latest - previous
	}
	return 0
}

// fastestMinutes returns the user's quickest exam in minutes, clamped to
// at least 1 so sub-minute runs still register. 0 means no exams yet.
func (c *checkSnapshot) fastestMinutes(passedOnly bool) int {
	best := 0
	for _, e := range c.exams {
		if passedOnly && !e.IsPassed {
			continue
		}
		minutes := e.DurationMinutes
		if minutes < 1 {
			minutes = 1
		}
		if best == 0 || minutes < best {
			best = minutes
		}
	}
	return best
}

func (c *checkSnapshot) distinctRounds() int {
	rounds := make(map[int64]bool)
	for _, e := range c.exams {
		rounds[e.RoundID] = true
	}
	return len(rounds)
}

func (c *checkSnapshot) latest() *repository.ExamMetric {
	if len(c.exams) == 0 {
		return nil
	}
	return &c.exams[len(c.exams)-1]
}

func (c *checkSnapshot) rankFirsts() int {
	n := 0
	for _, r := range c.ranks {
		if r.Rank == 1 {
			n++
		}
	}
	return n
}

func (c *checkSnapshot) rankTop2() int {
	n := 0
	for _, r := range c.ranks {
		if r.Rank <= 2 {
			n++
		}
	}
	return n
}

// comeback reports a first place achieved right after a fourth place or
// worse in the preceding round.
func (c *checkSnapshot) comeback() bool {
	for i := 1; i < len(c.ranks); i++ {
		if c.ranks[i-1].Rank >= 4 && c.ranks[i].Rank == 1 {
			return true
		}
	}
	return false
}

func (c *checkSnapshot) bookPercent(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}

func boolValue(ok bool) int {
	if ok {
		return 1
	}
	return 0
}

// evaluate computes one achievement's current value and any newly earned
// tier. ok is false for achievements this service does not evaluate
// (those unlocked directly at their trigger point).
func (s *AchievementCheckService) evaluate(a *model.Achievement, snap *checkSnapshot, current *model.Tier) (CheckResult, bool) {
	var value int
	reverse := false

	switch a.ID {
	case "FIRST_LOGIN":
		value = boolValue(len(snap.loginDates) > 0)
	case "FIRST_EXAM":
		value = len(snap.exams)
	case "FIRST_PASS":
		value = snap.passed()
	case "FIRST_PERFECT":
		value = snap.perfects()
	case "FIRST_OFFLINE":
		value = snap.modeCount(model.ExamModeOffline)
	case "FIRST_STUDY":
		value = snap.counters[ActionStudyPageVisit]
	case "FIRST_TTS":
		value = snap.counters[ActionTTSClick]

	case "EXAM_COUNT":
		value = len(snap.exams)
	case "PASS_COUNT":
		value = snap.passed()
	case "ONLINE_MASTER":
		value = snap.modeCount(model.ExamModeOnline)
	case "OFFLINE_MASTER":
		value = snap.modeCount(model.ExamModeOffline)
	case "BOTH_MODES":
		value = min(snap.modeCount(model.ExamModeOnline), snap.modeCount(model.ExamModeOffline))
	case "TOTAL_CORRECT":
		value = snap.totalCorrect()

	case "HIGH_SCORE":
		value = snap.maxCorrect()
	case "AVG_SCORE":
		value = snap.avgLast(5)
	case "PERFECT_SCORE":
		value = snap.perfects()
	case "PERFECT_STREAK":
		value = min(snap.perfects(), 2)
	case "PASS_STREAK":
		value = snap.passStreak()
	case "SCORE_IMPROVEMENT":
		value = snap.scoreImprovement()
	case "NEVER_FAIL":
		value = boolValue(len(snap.exams) >= 10 && snap.passed() == len(snap.exams))

	case "FAST_EXAM":
		value, reverse = snap.fastestMinutes(false), true
	case "SPEED_PASS":
		value, reverse = snap.fastestMinutes(true), true
	case "FIRST_SUBMIT":
		value = boolValue(snap.firstSubmits > 0)
	case "FIRST_SUBMIT_COUNT":
		value = snap.firstSubmits
	case "SLOW_AND_STEADY":
		ok := false
		for _, e := range snap.exams {
			if e.IsPassed && e.DurationMinutes >= 30 {
				ok = true
				break
			}
		}
		value = boolValue(ok)

	case "LOGIN_STREAK":
		value = maxConsecutiveDays(snap.loginDates)
	case "STUDY_STREAK":
		value = maxConsecutiveDays(snap.studyDates)
	case "WEEKLY_ACTIVE":
		value = maxWeeklyActiveDays(snap.loginDates)
	case "MONTHLY_LOGIN":
		value = maxMonthlyActiveDays(snap.loginDates)

	case "VOCAB_COUNT":
		value = snap.vocabLearned
	case "TTS_COUNT":
		value = snap.counters[ActionTTSClick]
	case "STUDY_VISIT":
		value = snap.counters[ActionStudyPageVisit]
	case "VIDEO_WATCH":
		value = snap.counters[ActionVideoPlay]
	case "PDF_DOWNLOAD":
		value = snap.counters[ActionPDFDownload]
	case "VOCAB_DOWNLOAD":
		value = snap.counters[ActionVocabDownload]
	case "STUDY_ROUNDS":
		value = snap.counters[ActionStudyRoundVisit]
	case "ALL_MATERIALS":
		value = boolValue(snap.counters[ActionVideoPlay] > 0 &&
			snap.counters[ActionPDFDownload] > 0 &&
			snap.counters[ActionVocabDownload] > 0)
	case "FEATURE_EXPLORER":
		value = boolValue(snap.counters[ActionStudyPageVisit] > 0 &&
			snap.counters[ActionExamPageVisit] > 0 &&
			snap.counters[ActionHistoryPageVisit] > 0 &&
			snap.counters[ActionAnalyticsPageVisit] > 0 &&
			snap.counters[ActionProgressPageVisit] > 0)

	case "BOOK1_PROGRESS":
		value = snap.bookPercent(snap.bookOneDone, snap.bookOneTotal)
	case "BOOK2_PROGRESS":
		value = snap.bookPercent(snap.bookTwoDone, snap.bookTwoTotal)
	case "BOTH_BOOKS":
		value = min(snap.bookPercent(snap.bookOneDone, snap.bookOneTotal),
			snap.bookPercent(snap.bookTwoDone, snap.bookTwoTotal))
	case "BOOK1_COMPLETE":
		value = boolValue(snap.bookOneTotal > 0 && snap.bookOneDone >= snap.bookOneTotal)
	case "BOOK2_COMPLETE":
		value = boolValue(snap.bookTwoTotal > 0 && snap.bookTwoDone >= snap.bookTwoTotal)
	case "CHAPTER_STREAK":
		value = snap.bookOneDone + snap.bookTwoDone

	case "RANK_FIRST":
		value = boolValue(snap.rankFirsts() > 0)
	case "RANK_FIRST_COUNT", "RIVAL_WIN":
		value = snap.rankFirsts()
	case "RANK_TOP2":
		value = snap.rankTop2()
	case "COMEBACK":
		value = boolValue(snap.comeback())
	case "FULL_PARTICIPATION":
		value = snap.distinctRounds()
	case "FOUR_COMPLETE":
		value = snap.closedRounds

	case "EXACTLY_HALF":
		e := snap.latest()
		value = boolValue(e != nil && e.TotalCount > 0 && e.CorrectCount*2 == e.TotalCount)
	case "SCORE_PALINDROME":
		e := snap.latest()
		value = boolValue(e != nil && isPalindrome(e.CorrectCount))
	case "ZERO_HERO":
		e := snap.latest()
		value = boolValue(e != nil && e.CorrectCount == 0)
	case "SAME_SCORE":
		value = boolValue(snap.sameScore > 0)

	case "LEGEND_SCHOLAR":
		value = snap.avgLast(20)
	case "LEGEND_MARATHON":
		value = len(snap.exams)
	case "LEGEND_PERFECT_10":
		value = snap.perfects()
	case "LEGEND_STREAK_30":
		value = maxConsecutiveDays(snap.loginDates)
	case "LEGEND_COMPLETE":
		value = min(snap.bookPercent(snap.bookOneDone, snap.bookOneTotal),
			snap.bookPercent(snap.bookTwoDone, snap.bookTwoTotal))
	case "LEGEND_GRANDMASTER":
		value = snap.goldOrAbove

	default:
		return CheckResult{}, false
	}

	if a.IsTiered {
		return checkTiered(value, a.TierThresholds, current, reverse), true
	}
	return checkSimple(value, a.Threshold, current), true
}

// isPalindrome reports whether n reads the same forwards and backwards
// and has at least two digits.
func isPalindrome(n int) bool {
	if n < 10 {
		return false
	}
	reversed, rest := 0, n
	for rest > 0 {
		reversed = reversed*10 + rest%10
		rest /= 10
	}
	return reversed == n
}

// unlock records every tier between the held and earned one, awards the
// linked badge when the earned tier qualifies, and publishes the top
// unlock for live notification.
func (s *AchievementCheckService) unlock(ctx context.Context, userID int64, a *model.Achievement, res CheckResult, current *model.Tier) error {
	tiers := []*model.Tier{nil}
	if a.IsTiered {
		tiers = tiers[:0]
		for _, tier := range tiersBetween(current, res.Tier) {
			t := tier
			tiers = append(tiers, &t)
		}
	}

	var topInserted bool
	for i, tier := range tiers {
		inserted, err := s.achievements.InsertUnlock(ctx, &model.UserAchievement{
			UserID:        userID,
			AchievementID: a.ID,
			Tier:          tier,
			CurrentValue:  res.Value,
		})
		if err != nil {
			return err
		}
		if i == len(tiers)-1 {
			topInserted = inserted
		}
	}
	if !topInserted {
		return nil
	}

	if a.BadgeID != "" && s.badgeEarned(a, res.Tier) {
		if err := s.badges.Award(ctx, userID, a.BadgeID); err != nil {
			return err
		}
	}

	s.publishUnlock(ctx, userID, a, res)
	s.log.Info().
		Int64("user_id", userID).
		Str("achievement_id", a.ID).
		Interface("tier", res.Tier).
		Int("value", res.Value).
		Msg("achievement unlocked")
	return nil
}

func (s *AchievementCheckService) badgeEarned(a *model.Achievement, earned *model.Tier) bool {
	if a.GrantsBadgeAt == nil {
		return true
	}
	return tierIndex(earned) >= tierIndex(a.GrantsBadgeAt)
}

func (s *AchievementCheckService) publishUnlock(ctx context.Context, userID int64, a *model.Achievement, res CheckResult) {
	event := model.UnlockEvent{
		UserID:        userID,
		AchievementID: a.ID,
		NameKR:        a.NameKR,
		Icon:          a.Icon,
		Tier:          res.Tier,
		BadgeID:       a.BadgeID,
		UnlockedAt:    time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal unlock event")
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.AchievementUnlockChannel(userID), payload).Err(); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("failed to publish unlock event")
	}
}

// storeProgress persists the value and the next target so the client can
// render progress bars without recomputing stats.
func (s *AchievementCheckService) storeProgress(ctx context.Context, userID int64, a *model.Achievement, res CheckResult, held map[string]*model.Tier) error {
	progress := &model.AchievementProgress{
		UserID:        userID,
		AchievementID: a.ID,
		CurrentValue:  res.Value,
	}
	if a.IsTiered {
		current := tierIndex(held[a.ID])
		for i, tier := range model.Tiers {
			threshold, ok := a.TierThresholds[tier]
			if !ok || i <= current {
				continue
			}
			t := tier
			progress.NextTier = &t
			progress.TargetValue = threshold
			break
		}
	} else if _, unlocked := held[a.ID]; !unlocked {
		progress.TargetValue = a.Threshold
	}
	return s.achievements.UpsertProgress(ctx, progress)
}
