package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dnflvus-wq/engTest-sub000/internal/config"
	"github.com/dnflvus-wq/engTest-sub000/internal/database"
	"github.com/dnflvus-wq/engTest-sub000/internal/logger"
	"github.com/dnflvus-wq/engTest-sub000/internal/model"
)

// tiers is shorthand for building a tier threshold map.
func tiers(bronze, silver, gold, diamond int) map[model.Tier]int {
	return map[model.Tier]int{
		model.TierBronze:  bronze,
		model.TierSilver:  silver,
		model.TierGold:    gold,
		model.TierDiamond: diamond,
	}
}

func tierPtr(t model.Tier) *model.Tier { return &t }

// achievementCatalog is the full catalog. Display order follows the
// slice order. Categories decide which events recheck an achievement,
// so study-derived metrics sit under STUDY/VOCAB and rank-derived ones
// under CHALLENGE.
var achievementCatalog = []model.Achievement{
	// ─── Firsts ────────────────────────────────────────────────────────
	{ID: "FIRST_LOGIN", Category: model.CategoryTime, NameKR: "첫 발걸음", NameEN: "First Steps", DescriptionKR: "처음으로 접속했어요", Icon: "👋", Threshold: 1},
	{ID: "FIRST_EXAM", Category: model.CategoryExam, NameKR: "첫 시험", NameEN: "First Exam", DescriptionKR: "첫 시험을 완료했어요", Icon: "📝", Threshold: 1},
	{ID: "FIRST_PASS", Category: model.CategoryExam, NameKR: "첫 합격", NameEN: "First Pass", DescriptionKR: "처음으로 시험에 합격했어요", Icon: "✅", Threshold: 1},
	{ID: "FIRST_PERFECT", Category: model.CategoryScore, NameKR: "첫 만점", NameEN: "First Perfect", DescriptionKR: "처음으로 만점을 받았어요", Icon: "💯", Threshold: 1, BadgeID: "BADGE_PERFECT", GrantsBadgeAt: nil},
	{ID: "FIRST_OFFLINE", Category: model.CategoryExam, NameKR: "연필의 힘", NameEN: "Paper Power", DescriptionKR: "오프라인 시험을 처음 제출했어요", Icon: "✏️", Threshold: 1},
	{ID: "FIRST_STUDY", Category: model.CategoryStudy, NameKR: "공부 시작", NameEN: "Study Begins", DescriptionKR: "학습 페이지를 처음 방문했어요", Icon: "📖", Threshold: 1},
	{ID: "FIRST_TTS", Category: model.CategoryVocab, NameKR: "첫 발음 듣기", NameEN: "First Listen", DescriptionKR: "단어 발음을 처음 들어봤어요", Icon: "🔊", Threshold: 1},

	// ─── Exam volume ───────────────────────────────────────────────────
	{ID: "EXAM_COUNT", Category: model.CategoryExam, NameKR: "시험 단골", NameEN: "Exam Regular", DescriptionKR: "시험을 여러 번 완료했어요", Icon: "📚", IsTiered: true, TierThresholds: tiers(5, 15, 30, 60), BadgeID: "BADGE_VETERAN", GrantsBadgeAt: tierPtr(model.TierDiamond)},
	{ID: "PASS_COUNT", Category: model.CategoryExam, NameKR: "합격 수집가", NameEN: "Pass Collector", DescriptionKR: "시험에 여러 번 합격했어요", Icon: "🎯", IsTiered: true, TierThresholds: tiers(3, 10, 20, 40)},
	{ID: "ONLINE_MASTER", Category: model.CategoryExam, NameKR: "온라인 마스터", NameEN: "Online Master", DescriptionKR: "온라인 시험을 많이 완료했어요", Icon: "💻", IsTiered: true, TierThresholds: tiers(5, 15, 30, 60)},
	{ID: "OFFLINE_MASTER", Category: model.CategoryExam, NameKR: "오프라인 마스터", NameEN: "Offline Master", DescriptionKR: "오프라인 시험을 많이 제출했어요", Icon: "📄", IsTiered: true, TierThresholds: tiers(3, 10, 20, 40)},
	{ID: "BOTH_MODES", Category: model.CategoryExam, NameKR: "양손잡이", NameEN: "Ambidextrous", DescriptionKR: "온라인과 오프라인을 모두 활용했어요", Icon: "🤹", IsTiered: true, TierThresholds: tiers(2, 5, 10, 20)},
	{ID: "TOTAL_CORRECT", Category: model.CategoryExam, NameKR: "정답 부자", NameEN: "Answer Rich", DescriptionKR: "누적 정답 수를 쌓았어요", Icon: "🪙", IsTiered: true, TierThresholds: tiers(100, 300, 600, 1200)},

	// ─── Scores ────────────────────────────────────────────────────────
	{ID: "HIGH_SCORE", Category: model.CategoryScore, NameKR: "고득점자", NameEN: "High Scorer", DescriptionKR: "높은 점수를 기록했어요", Icon: "⭐", IsTiered: true, TierThresholds: tiers(18, 24, 28, 30)},
	{ID: "AVG_SCORE", Category: model.CategoryScore, NameKR: "꾸준한 실력", NameEN: "Steady Skill", DescriptionKR: "최근 5회 평균 점수가 높아요", Icon: "📈", IsTiered: true, TierThresholds: tiers(18, 22, 26, 29)},
	{ID: "PERFECT_SCORE", Category: model.CategoryScore, NameKR: "만점 제조기", NameEN: "Perfect Machine", DescriptionKR: "만점을 여러 번 받았어요", Icon: "🌟", IsTiered: true, TierThresholds: tiers(1, 3, 5, 10), BadgeID: "BADGE_PERFECTIONIST", GrantsBadgeAt: tierPtr(model.TierGold)},
	{ID: "PERFECT_STREAK", Category: model.CategoryScore, NameKR: "연속 만점", NameEN: "Back to Back", DescriptionKR: "만점을 연달아 받았어요", Icon: "🔥", Threshold: 2},
	{ID: "PASS_STREAK", Category: model.CategoryScore, NameKR: "연승 가도", NameEN: "Winning Streak", DescriptionKR: "연속으로 합격했어요", Icon: "🏃", IsTiered: true, TierThresholds: tiers(2, 4, 6, 10)},
	{ID: "SCORE_IMPROVEMENT", Category: model.CategoryScore, NameKR: "일취월장", NameEN: "Level Up", DescriptionKR: "이전 시험보다 점수가 크게 올랐어요", Icon: "🚀", IsTiered: true, TierThresholds: tiers(3, 5, 8, 12)},
	{ID: "NEVER_FAIL", Category: model.CategoryScore, NameKR: "무패 행진", NameEN: "Undefeated", DescriptionKR: "10회 이상 응시하고 한 번도 떨어지지 않았어요", Icon: "🛡️", Threshold: 1, BadgeID: "BADGE_UNDEFEATED", GrantsBadgeAt: nil},

	// ─── Speed ─────────────────────────────────────────────────────────
	{ID: "FAST_EXAM", Category: model.CategorySpeed, NameKR: "스피드 스타", NameEN: "Speed Star", DescriptionKR: "시험을 빠르게 끝냈어요", Icon: "⚡", IsTiered: true, TierThresholds: tiers(20, 15, 10, 5)},
	{ID: "SPEED_PASS", Category: model.CategorySpeed, NameKR: "번개 합격", NameEN: "Lightning Pass", DescriptionKR: "빠르게 끝내고도 합격했어요", Icon: "🌩️", IsTiered: true, TierThresholds: tiers(25, 20, 15, 10)},
	{ID: "FIRST_SUBMIT", Category: model.CategorySpeed, NameKR: "선착순 1등", NameEN: "First In", DescriptionKR: "회차에서 가장 먼저 제출했어요", Icon: "🥇", Threshold: 1},
	{ID: "FIRST_SUBMIT_COUNT", Category: model.CategorySpeed, NameKR: "부지런한 새", NameEN: "Early Bird", DescriptionKR: "여러 회차에서 가장 먼저 제출했어요", Icon: "🐦", IsTiered: true, TierThresholds: tiers(1, 3, 5, 10)},
	{ID: "SLOW_AND_STEADY", Category: model.CategorySpeed, NameKR: "신중한 승리", NameEN: "Slow and Steady", DescriptionKR: "30분 이상 차분히 풀고 합격했어요", Icon: "🐢", Threshold: 1},

	// ─── Streaks and time ──────────────────────────────────────────────
	{ID: "LOGIN_STREAK", Category: model.CategoryStreak, NameKR: "개근상", NameEN: "Perfect Attendance", DescriptionKR: "연속으로 접속했어요", Icon: "📅", IsTiered: true, TierThresholds: tiers(3, 7, 14, 30), BadgeID: "BADGE_DEDICATED", GrantsBadgeAt: tierPtr(model.TierDiamond)},
	{ID: "STUDY_STREAK", Category: model.CategoryStudy, NameKR: "매일 공부", NameEN: "Daily Grind", DescriptionKR: "연속으로 학습했어요", Icon: "✍️", IsTiered: true, TierThresholds: tiers(3, 7, 14, 30)},
	{ID: "WEEKLY_ACTIVE", Category: model.CategoryTime, NameKR: "주간 활동왕", NameEN: "Weekly Warrior", DescriptionKR: "한 주에 여러 날 접속했어요", Icon: "🗓️", IsTiered: true, TierThresholds: tiers(3, 5, 6, 7)},
	{ID: "MONTHLY_LOGIN", Category: model.CategoryTime, NameKR: "월간 개근", NameEN: "Monthly Regular", DescriptionKR: "한 달에 여러 날 접속했어요", Icon: "🌙", IsTiered: true, TierThresholds: tiers(10, 15, 20, 25)},

	// ─── Vocabulary and study ──────────────────────────────────────────
	{ID: "VOCAB_COUNT", Category: model.CategoryVocab, NameKR: "단어 수집가", NameEN: "Word Collector", DescriptionKR: "많은 단어를 학습했어요", Icon: "📔", IsTiered: true, TierThresholds: tiers(100, 300, 600, 1000), BadgeID: "BADGE_LEXICON", GrantsBadgeAt: tierPtr(model.TierDiamond)},
	{ID: "TTS_COUNT", Category: model.CategoryVocab, NameKR: "발음 연습생", NameEN: "Pronunciation Trainee", DescriptionKR: "단어 발음을 많이 들었어요", Icon: "🎧", IsTiered: true, TierThresholds: tiers(20, 60, 150, 300)},
	{ID: "STUDY_VISIT", Category: model.CategoryStudy, NameKR: "도서관 지킴이", NameEN: "Library Keeper", DescriptionKR: "학습 페이지를 자주 방문했어요", Icon: "🏛️", IsTiered: true, TierThresholds: tiers(5, 15, 40, 100)},
	{ID: "VIDEO_WATCH", Category: model.CategoryStudy, NameKR: "영상 학습러", NameEN: "Video Learner", DescriptionKR: "학습 영상을 많이 시청했어요", Icon: "🎬", IsTiered: true, TierThresholds: tiers(3, 10, 25, 50)},
	{ID: "PDF_DOWNLOAD", Category: model.CategoryStudy, NameKR: "자료 수집가", NameEN: "Material Collector", DescriptionKR: "학습 자료를 내려받았어요", Icon: "📥", IsTiered: true, TierThresholds: tiers(2, 5, 10, 20)},
	{ID: "VOCAB_DOWNLOAD", Category: model.CategoryStudy, NameKR: "단어장 수집가", NameEN: "Wordlist Collector", DescriptionKR: "단어장을 내려받았어요", Icon: "📑", IsTiered: true, TierThresholds: tiers(2, 5, 10, 20)},
	{ID: "STUDY_ROUNDS", Category: model.CategoryStudy, NameKR: "회차 탐험가", NameEN: "Round Explorer", DescriptionKR: "여러 회차의 학습 자료를 살펴봤어요", Icon: "🧭", IsTiered: true, TierThresholds: tiers(3, 8, 15, 30)},
	{ID: "ALL_MATERIALS", Category: model.CategoryStudy, NameKR: "자료 정복자", NameEN: "Material Conqueror", DescriptionKR: "영상, 자료, 단어장을 모두 활용했어요", Icon: "🎒", Threshold: 1},
	{ID: "FEATURE_EXPLORER", Category: model.CategoryStudy, NameKR: "구석구석 탐험", NameEN: "Feature Explorer", DescriptionKR: "모든 페이지를 둘러봤어요", Icon: "🔍", Threshold: 1},

	// ─── Book progress ─────────────────────────────────────────────────
	{ID: "BOOK1_PROGRESS", Category: model.CategoryStudy, NameKR: "1권 진행 중", NameEN: "Book One Progress", DescriptionKR: "1권 진도를 나가고 있어요", Icon: "1️⃣", IsTiered: true, TierThresholds: tiers(25, 50, 75, 100)},
	{ID: "BOOK2_PROGRESS", Category: model.CategoryStudy, NameKR: "2권 진행 중", NameEN: "Book Two Progress", DescriptionKR: "2권 진도를 나가고 있어요", Icon: "2️⃣", IsTiered: true, TierThresholds: tiers(25, 50, 75, 100)},
	{ID: "BOTH_BOOKS", Category: model.CategoryStudy, NameKR: "두 권 동시에", NameEN: "Double Reader", DescriptionKR: "두 권 모두 진도를 나가고 있어요", Icon: "📚", IsTiered: true, TierThresholds: tiers(25, 50, 75, 100)},
	{ID: "BOOK1_COMPLETE", Category: model.CategoryStudy, NameKR: "1권 완독", NameEN: "Book One Done", DescriptionKR: "1권의 모든 챕터를 끝냈어요", Icon: "🏁", Threshold: 1, BadgeID: "BADGE_BOOK1", GrantsBadgeAt: nil},
	{ID: "BOOK2_COMPLETE", Category: model.CategoryStudy, NameKR: "2권 완독", NameEN: "Book Two Done", DescriptionKR: "2권의 모든 챕터를 끝냈어요", Icon: "🎉", Threshold: 1, BadgeID: "BADGE_BOOK2", GrantsBadgeAt: nil},
	{ID: "CHAPTER_STREAK", Category: model.CategoryStudy, NameKR: "챕터 사냥꾼", NameEN: "Chapter Hunter", DescriptionKR: "챕터를 꾸준히 끝내고 있어요", Icon: "🪓", IsTiered: true, TierThresholds: tiers(5, 15, 30, 60)},

	// ─── Ranking challenges ────────────────────────────────────────────
	{ID: "RANK_FIRST", Category: model.CategoryChallenge, NameKR: "왕좌에 앉다", NameEN: "Take the Throne", DescriptionKR: "회차 1등을 차지했어요", Icon: "👑", Threshold: 1, BadgeID: "BADGE_CHAMPION", GrantsBadgeAt: nil},
	{ID: "RANK_FIRST_COUNT", Category: model.CategoryChallenge, NameKR: "왕좌 단골", NameEN: "Throne Regular", DescriptionKR: "여러 회차에서 1등을 차지했어요", Icon: "🏆", IsTiered: true, TierThresholds: tiers(1, 3, 5, 10)},
	{ID: "RIVAL_WIN", Category: model.CategoryChallenge, NameKR: "라이벌 제압", NameEN: "Rival Crusher", DescriptionKR: "경쟁에서 계속 이기고 있어요", Icon: "⚔️", IsTiered: true, TierThresholds: tiers(2, 5, 10, 20)},
	{ID: "RANK_TOP2", Category: model.CategoryChallenge, NameKR: "정상권", NameEN: "Podium Finish", DescriptionKR: "상위권에 여러 번 들었어요", Icon: "🥈", IsTiered: true, TierThresholds: tiers(2, 5, 10, 15)},
	{ID: "COMEBACK", Category: model.CategoryChallenge, NameKR: "대역전극", NameEN: "The Comeback", DescriptionKR: "하위권에서 1등으로 올라섰어요", Icon: "🎭", Threshold: 1},
	{ID: "FULL_PARTICIPATION", Category: model.CategoryChallenge, NameKR: "빠짐없이", NameEN: "Full Attendance", DescriptionKR: "여러 회차에 모두 응시했어요", Icon: "🙋", IsTiered: true, TierThresholds: tiers(2, 4, 8, 15)},
	{ID: "FOUR_COMPLETE", Category: model.CategoryChallenge, NameKR: "완주자", NameEN: "Finisher", DescriptionKR: "마감된 회차를 완주했어요", Icon: "🎖️", IsTiered: true, TierThresholds: tiers(1, 2, 4, 8)},

	// ─── Hidden ────────────────────────────────────────────────────────
	{ID: "EXACTLY_HALF", Category: model.CategorySpecial, NameKR: "반반 무마니", NameEN: "Exactly Half", DescriptionKR: "정확히 절반만 맞혔어요", Icon: "🌓", IsHidden: true, Threshold: 1},
	{ID: "SCORE_PALINDROME", Category: model.CategorySpecial, NameKR: "데칼코마니", NameEN: "Palindrome", DescriptionKR: "점수가 거꾸로 읽어도 같아요", Icon: "🪞", IsHidden: true, Threshold: 1},
	{ID: "ZERO_HERO", Category: model.CategorySpecial, NameKR: "0점의 전설", NameEN: "Zero Hero", DescriptionKR: "하나도 맞히지 못했어요", Icon: "🕳️", IsHidden: true, Threshold: 1},
	{ID: "SAME_SCORE", Category: model.CategorySpecial, NameKR: "운명의 동점", NameEN: "Twin Scores", DescriptionKR: "같은 회차에서 누군가와 동점이에요", Icon: "👯", IsHidden: true, Threshold: 1},

	// ─── Legend ────────────────────────────────────────────────────────
	{ID: "LEGEND_SCHOLAR", Category: model.CategorySpecial, NameKR: "전설의 학자", NameEN: "Legendary Scholar", DescriptionKR: "최근 20회 평균이 압도적이에요", Icon: "🧙", Threshold: 27, BadgeID: "BADGE_SCHOLAR", GrantsBadgeAt: nil},
	{ID: "LEGEND_MARATHON", Category: model.CategorySpecial, NameKR: "마라토너", NameEN: "Marathoner", DescriptionKR: "시험 100회를 완주했어요", Icon: "🏅", Threshold: 100, BadgeID: "BADGE_MARATHON", GrantsBadgeAt: nil},
	{ID: "LEGEND_PERFECT_10", Category: model.CategorySpecial, NameKR: "만점 10관왕", NameEN: "Perfect Ten", DescriptionKR: "만점을 10번 달성했어요", Icon: "🔟", Threshold: 10, BadgeID: "BADGE_PERFECT10", GrantsBadgeAt: nil},
	{ID: "LEGEND_STREAK_30", Category: model.CategorySpecial, NameKR: "30일의 기적", NameEN: "Thirty Days", DescriptionKR: "30일 연속 접속했어요", Icon: "🌞", Threshold: 30},
	{ID: "LEGEND_COMPLETE", Category: model.CategorySpecial, NameKR: "전권 정복", NameEN: "Total Conquest", DescriptionKR: "모든 책을 완독했어요", Icon: "🗻", Threshold: 100, BadgeID: "BADGE_CONQUEROR", GrantsBadgeAt: nil},
	{ID: "LEGEND_GRANDMASTER", Category: model.CategorySpecial, NameKR: "그랜드마스터", NameEN: "Grandmaster", DescriptionKR: "골드 이상 업적을 10개 모았어요", Icon: "♟️", Threshold: 10, BadgeID: "BADGE_GRANDMASTER", GrantsBadgeAt: nil},
}

var badgeCatalog = []model.Badge{
	{ID: "BADGE_PERFECT", AchievementID: "FIRST_PERFECT", NameKR: "첫 만점 배지", NameEN: "First Perfect", Icon: "💯", Rarity: model.RarityRare},
	{ID: "BADGE_PERFECTIONIST", AchievementID: "PERFECT_SCORE", NameKR: "완벽주의자", NameEN: "Perfectionist", Icon: "🌟", Rarity: model.RarityEpic},
	{ID: "BADGE_VETERAN", AchievementID: "EXAM_COUNT", NameKR: "시험 베테랑", NameEN: "Exam Veteran", Icon: "🎖️", Rarity: model.RarityEpic},
	{ID: "BADGE_UNDEFEATED", AchievementID: "NEVER_FAIL", NameKR: "무패의 증표", NameEN: "Undefeated", Icon: "🛡️", Rarity: model.RarityEpic},
	{ID: "BADGE_DEDICATED", AchievementID: "LOGIN_STREAK", NameKR: "성실의 증표", NameEN: "Dedicated", Icon: "📅", Rarity: model.RarityRare},
	{ID: "BADGE_LEXICON", AchievementID: "VOCAB_COUNT", NameKR: "걸어다니는 사전", NameEN: "Walking Lexicon", Icon: "📔", Rarity: model.RarityEpic},
	{ID: "BADGE_BOOK1", AchievementID: "BOOK1_COMPLETE", NameKR: "1권 완독자", NameEN: "Book One Finisher", Icon: "1️⃣", Rarity: model.RarityRare},
	{ID: "BADGE_BOOK2", AchievementID: "BOOK2_COMPLETE", NameKR: "2권 완독자", NameEN: "Book Two Finisher", Icon: "2️⃣", Rarity: model.RarityRare},
	{ID: "BADGE_CHAMPION", AchievementID: "RANK_FIRST", NameKR: "챔피언", NameEN: "Champion", Icon: "👑", Rarity: model.RarityEpic},
	{ID: "BADGE_SCHOLAR", AchievementID: "LEGEND_SCHOLAR", NameKR: "전설의 학자", NameEN: "Legendary Scholar", Icon: "🧙", Rarity: model.RarityLegendary, ProfileEffect: "glow"},
	{ID: "BADGE_MARATHON", AchievementID: "LEGEND_MARATHON", NameKR: "마라토너", NameEN: "Marathoner", Icon: "🏅", Rarity: model.RarityLegendary, ProfileEffect: "glow"},
	{ID: "BADGE_PERFECT10", AchievementID: "LEGEND_PERFECT_10", NameKR: "만점 10관왕", NameEN: "Perfect Ten", Icon: "🔟", Rarity: model.RarityLegendary, ProfileEffect: "sparkle"},
	{ID: "BADGE_CONQUEROR", AchievementID: "LEGEND_COMPLETE", NameKR: "전권 정복자", NameEN: "Conqueror", Icon: "🗻", Rarity: model.RarityLegendary, ProfileEffect: "sparkle"},
	{ID: "BADGE_GRANDMASTER", AchievementID: "LEGEND_GRANDMASTER", NameKR: "그랜드마스터", NameEN: "Grandmaster", Icon: "♟️", Rarity: model.RarityLegendary, ProfileEffect: "aurora"},
}

// chapterCatalog covers both study books. Sequence numbers run across
// books so a single ordered listing interleaves correctly.
var chapterCatalog = []model.BookChapter{
	{BookID: "BOOK1", BookTitle: "워드마스터 수능 2000", PartNumber: 1, PartTitle: "Part 1 기본 어휘", ChapterLabel: "Day 01", ChapterTitle: "일상과 학교", SeqNo: 1, VocabularyCount: 40},
	{BookID: "BOOK1", BookTitle: "워드마스터 수능 2000", PartNumber: 1, PartTitle: "Part 1 기본 어휘", ChapterLabel: "Day 02", ChapterTitle: "감정과 성격", SeqNo: 2, VocabularyCount: 40},
	{BookID: "BOOK1", BookTitle: "워드마스터 수능 2000", PartNumber: 1, PartTitle: "Part 1 기본 어휘", ChapterLabel: "Day 03", ChapterTitle: "자연과 환경", SeqNo: 3, VocabularyCount: 40},
	{BookID: "BOOK1", BookTitle: "워드마스터 수능 2000", PartNumber: 1, PartTitle: "Part 1 기본 어휘", ChapterLabel: "Day 04", ChapterTitle: "사회와 문화", SeqNo: 4, VocabularyCount: 40},
	{BookID: "BOOK1", BookTitle: "워드마스터 수능 2000", PartNumber: 1, PartTitle: "Part 1 기본 어휘", ChapterLabel: "Day 05", ChapterTitle: "과학과 기술", SeqNo: 5, VocabularyCount: 40},
	{BookID: "BOOK1", BookTitle: "워드마스터 수능 2000", PartNumber: 2, PartTitle: "Part 2 핵심 어휘", ChapterLabel: "Day 06", ChapterTitle: "경제와 직업", SeqNo: 6, VocabularyCount: 40},
	{BookID: "BOOK1", BookTitle: "워드마스터 수능 2000", PartNumber: 2, PartTitle: "Part 2 핵심 어휘", ChapterLabel: "Day 07", ChapterTitle: "건강과 의학", SeqNo: 7, VocabularyCount: 40},
	{BookID: "BOOK1", BookTitle: "워드마스터 수능 2000", PartNumber: 2, PartTitle: "Part 2 핵심 어휘", ChapterLabel: "Day 08", ChapterTitle: "역사와 정치", SeqNo: 8, VocabularyCount: 40},
	{BookID: "BOOK1", BookTitle: "워드마스터 수능 2000", PartNumber: 2, PartTitle: "Part 2 핵심 어휘", ChapterLabel: "Day 09", ChapterTitle: "예술과 문학", SeqNo: 9, VocabularyCount: 40},
	{BookID: "BOOK1", BookTitle: "워드마스터 수능 2000", PartNumber: 2, PartTitle: "Part 2 핵심 어휘", ChapterLabel: "Day 10", ChapterTitle: "여행과 교통", SeqNo: 10, VocabularyCount: 40},
	{BookID: "BOOK2", BookTitle: "워드마스터 수능 고난도", PartNumber: 1, PartTitle: "Part 1 심화 어휘", ChapterLabel: "Day 01", ChapterTitle: "추상 개념", SeqNo: 11, VocabularyCount: 35},
	{BookID: "BOOK2", BookTitle: "워드마스터 수능 고난도", PartNumber: 1, PartTitle: "Part 1 심화 어휘", ChapterLabel: "Day 02", ChapterTitle: "논리와 추론", SeqNo: 12, VocabularyCount: 35},
	{BookID: "BOOK2", BookTitle: "워드마스터 수능 고난도", PartNumber: 1, PartTitle: "Part 1 심화 어휘", ChapterLabel: "Day 03", ChapterTitle: "학술 용어", SeqNo: 13, VocabularyCount: 35},
	{BookID: "BOOK2", BookTitle: "워드마스터 수능 고난도", PartNumber: 2, PartTitle: "Part 2 최고난도", ChapterLabel: "Day 04", ChapterTitle: "다의어와 파생어", SeqNo: 14, VocabularyCount: 35},
	{BookID: "BOOK2", BookTitle: "워드마스터 수능 고난도", PartNumber: 2, PartTitle: "Part 2 최고난도", ChapterLabel: "Day 05", ChapterTitle: "숙어와 관용구", SeqNo: 15, VocabularyCount: 35},
	{BookID: "BOOK2", BookTitle: "워드마스터 수능 고난도", PartNumber: 2, PartTitle: "Part 2 최고난도", ChapterLabel: "Day 06", ChapterTitle: "혼동 어휘", SeqNo: 16, VocabularyCount: 35},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	fmt.Println("=== Seeding achievement catalog ===")
	for i, a := range achievementCatalog {
		var thresholds []byte
		if a.IsTiered {
			thresholds, err = json.Marshal(a.TierThresholds)
			if err != nil {
				log.Fatal().Err(err).Str("achievement", a.ID).Msg("Failed to encode tier thresholds")
			}
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO achievements (id, category, name_kr, name_en, description_kr, icon,
			                           is_hidden, is_tiered, threshold, tier_thresholds,
			                           grants_badge_at, badge_id, display_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			 ON CONFLICT (id) DO UPDATE
			 SET category = EXCLUDED.category,
			     name_kr = EXCLUDED.name_kr,
			     name_en = EXCLUDED.name_en,
			     description_kr = EXCLUDED.description_kr,
			     icon = EXCLUDED.icon,
			     is_hidden = EXCLUDED.is_hidden,
			     is_tiered = EXCLUDED.is_tiered,
			     threshold = EXCLUDED.threshold,
			     tier_thresholds = EXCLUDED.tier_thresholds,
			     grants_badge_at = EXCLUDED.grants_badge_at,
			     badge_id = EXCLUDED.badge_id,
			     display_order = EXCLUDED.display_order`,
			a.ID, a.Category, a.NameKR, a.NameEN, a.DescriptionKR, a.Icon,
			a.IsHidden, a.IsTiered, a.Threshold, thresholds,
			a.GrantsBadgeAt, a.BadgeID, i+1)
		if err != nil {
			log.Fatal().Err(err).Str("achievement", a.ID).Msg("Failed to seed achievement")
		}
	}
	fmt.Printf("Seeded %d achievements\n", len(achievementCatalog))

	fmt.Println("=== Seeding badge catalog ===")
	for _, b := range badgeCatalog {
		_, err = pool.Exec(ctx,
			`INSERT INTO badges (id, achievement_id, name_kr, name_en, description_kr, icon, rarity, profile_effect)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (id) DO UPDATE
			 SET achievement_id = EXCLUDED.achievement_id,
			     name_kr = EXCLUDED.name_kr,
			     name_en = EXCLUDED.name_en,
			     description_kr = EXCLUDED.description_kr,
			     icon = EXCLUDED.icon,
			     rarity = EXCLUDED.rarity,
			     profile_effect = EXCLUDED.profile_effect`,
			b.ID, b.AchievementID, b.NameKR, b.NameEN, b.DescriptionKR, b.Icon, b.Rarity, b.ProfileEffect)
		if err != nil {
			log.Fatal().Err(err).Str("badge", b.ID).Msg("Failed to seed badge")
		}
	}
	fmt.Printf("Seeded %d badges\n", len(badgeCatalog))

	fmt.Println("=== Seeding book chapters ===")
	var chapterCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM book_chapters`).Scan(&chapterCount); err != nil {
		log.Fatal().Err(err).Msg("Failed to count chapters")
	}
	if chapterCount > 0 {
		fmt.Printf("Skipping: %d chapters already present\n", chapterCount)
	} else {
		for _, c := range chapterCatalog {
			_, err = pool.Exec(ctx,
				`INSERT INTO book_chapters (book_id, book_title, part_number, part_title,
				                            chapter_label, chapter_title, seq_no, vocabulary_count)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				c.BookID, c.BookTitle, c.PartNumber, c.PartTitle,
				c.ChapterLabel, c.ChapterTitle, c.SeqNo, c.VocabularyCount)
			if err != nil {
				log.Fatal().Err(err).Str("chapter", c.ChapterLabel).Msg("Failed to seed chapter")
			}
		}
		fmt.Printf("Seeded %d chapters\n", len(chapterCatalog))
	}

	fmt.Println("Done")
}
