package clubsapi

import "github.com/campusboard/core/internal/domain/entities"

// fallbackClubs is the bundled club dataset served when the backend is
// unreachable. Meeting schedules are real free-text strings as clubs enter
// them, including ones the occurrence parser cannot resolve.
var fallbackClubs = []entities.Club{
	{ID: "chess-club", Name: "Chess Club", Category: "Games", Description: "Casual and competitive chess, all levels welcome.", MeetingSchedule: "Tuesdays 5-7pm", MemberCount: 84},
	{ID: "robotics-society", Name: "Robotics Society", Category: "Engineering", Description: "Build and compete with autonomous robots.", MeetingSchedule: "Mon & Wed 7 PM", MemberCount: 122},
	{ID: "debate-union", Name: "Debate Union", Category: "Academic", Description: "British parliamentary debate, tournaments each term.", MeetingSchedule: "Thursdays 6:30pm", MemberCount: 65},
	{ID: "photography-collective", Name: "Photography Collective", Category: "Arts", Description: "Photo walks, darkroom access and critique nights.", MeetingSchedule: "Bi-weekly - Saturdays 2 PM", MemberCount: 47},
	{ID: "outdoors-club", Name: "Outdoors Club", Category: "Recreation", Description: "Hiking, climbing and camping trips around the region.", MeetingSchedule: "Varies", MemberCount: 310},
	{ID: "anime-society", Name: "Anime Society", Category: "Games", Description: "Weekly screenings and seasonal watch parties.", MeetingSchedule: "Fridays 6pm", MemberCount: 93},
	{ID: "ballroom-dance", Name: "Ballroom Dance Club", Category: "Arts", Description: "Beginner-friendly lessons in standard and latin.", MeetingSchedule: "Sundays 3-5pm", MemberCount: 58},
	{ID: "investment-club", Name: "Investment Club", Category: "Academic", Description: "Market analysis workshops and a mock portfolio.", MeetingSchedule: "every other week, Wednesday 5pm", MemberCount: 71},
	{ID: "volunteer-network", Name: "Volunteer Network", Category: "Community", Description: "Connects students with local volunteering placements.", MeetingSchedule: "TBD", MemberCount: 140},
	{ID: "jazz-ensemble", Name: "Jazz Ensemble", Category: "Arts", Description: "Auditioned big band, two concerts per year.", MeetingSchedule: "Tuesdays 7:30pm", MemberCount: 22},
	{ID: "quant-society", Name: "Quantitative Society", Category: "Academic", Description: "Math puzzles, trading games and guest talks.", MeetingSchedule: "Mondays 6pm", MemberCount: 54},
	{ID: "esports-association", Name: "Esports Association", Category: "Games", Description: "Competitive teams and casual game nights.", MeetingSchedule: "Year-round - Engineering building", MemberCount: 205},
}

// FallbackClubs returns a copy of the bundled dataset.
func FallbackClubs() []entities.Club {
	out := make([]entities.Club, len(fallbackClubs))
	copy(out, fallbackClubs)
	return out
}
