package store

import (
	"time"

	"github.com/lib/pq"

	"teamlink-service/internal/models"
)

// fixtureEpoch anchors all fixture timestamps so that demo sessions are
// reproducible run to run.
var fixtureEpoch = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

// FixtureProfiles returns the deterministic demo directory. The ids are
// stable so connections and messages created against fixture data stay
// navigable.
func FixtureProfiles() []models.Profile {
	return []models.Profile{
		{
			UserID:       "user1",
			Name:         "Alex Johnson",
			Role:         "Full Stack Developer",
			Bio:          "Software engineer with 3 years of experience in web development.",
			AvatarURL:    "https://randomuser.me/api/portraits/women/44.jpg",
			Skills:       pq.StringArray{"React", "Node.js", "UI Design", "TypeScript"},
			LookingFor:   pq.StringArray{"UI Designer", "Data Scientist", "DevOps Engineer"},
			ContactEmail: "alex@example.com",
			CreatedAt:    fixtureEpoch,
		},
		{
			UserID:       "user2",
			Name:         "Jordan Smith",
			Role:         "UX/UI Designer",
			Bio:          "Passionate designer focused on intuitive and beautiful interfaces.",
			AvatarURL:    "https://randomuser.me/api/portraits/men/32.jpg",
			Skills:       pq.StringArray{"UI Design", "Figma", "Prototyping", "HTML/CSS"},
			LookingFor:   pq.StringArray{"Frontend Developer", "Project Manager"},
			ContactEmail: "jordan@example.com",
			CreatedAt:    fixtureEpoch,
		},
		{
			UserID:       "user3",
			Name:         "Taylor Wong",
			Role:         "Data Scientist",
			Bio:          "Data scientist with expertise in machine learning and AI.",
			AvatarURL:    "https://randomuser.me/api/portraits/women/62.jpg",
			Skills:       pq.StringArray{"Python", "Machine Learning", "Data Visualization", "SQL"},
			LookingFor:   pq.StringArray{"Frontend Developer", "Backend Developer"},
			ContactEmail: "taylor@example.com",
			CreatedAt:    fixtureEpoch,
		},
		{
			UserID:       "user4",
			Name:         "Casey Martinez",
			Role:         "Backend Developer",
			Bio:          "Backend developer specializing in Node.js and database design.",
			AvatarURL:    "https://randomuser.me/api/portraits/women/22.jpg",
			Skills:       pq.StringArray{"Node.js", "MongoDB", "Express", "GraphQL"},
			LookingFor:   pq.StringArray{"Frontend Developer", "UI Designer", "Project Manager"},
			ContactEmail: "casey@example.com",
			CreatedAt:    fixtureEpoch,
		},
		{
			UserID:       "user5",
			Name:         "Robin Chen",
			Role:         "Mobile Developer",
			Bio:          "Mobile developer with experience in React Native and Flutter.",
			AvatarURL:    "https://randomuser.me/api/portraits/men/52.jpg",
			Skills:       pq.StringArray{"React Native", "Flutter", "JavaScript", "Firebase"},
			LookingFor:   pq.StringArray{"UI Designer", "Backend Developer"},
			ContactEmail: "robin@example.com",
			CreatedAt:    fixtureEpoch,
		},
		{
			UserID:       "user6",
			Name:         "Avery Williams",
			Role:         "Project Manager",
			Bio:          "Experienced project manager with a background in agile methodologies.",
			AvatarURL:    "https://randomuser.me/api/portraits/women/15.jpg",
			Skills:       pq.StringArray{"Agile", "Scrum", "JIRA", "Product Management"},
			LookingFor:   pq.StringArray{"Frontend Developer", "Backend Developer", "UI Designer"},
			ContactEmail: "avery@example.com",
			CreatedAt:    fixtureEpoch,
		},
	}
}

// FixtureConnections returns the seed connections for demo sessions: one
// outgoing pending request and one accepted inbound connection for user1.
func FixtureConnections() []models.Connection {
	return []models.Connection{
		{
			ID:          "conn1",
			PairKey:     models.PairKey("user1", "user2"),
			RequesterID: "user1",
			RecipientID: "user2",
			Status:      models.StatusPending,
			CreatedAt:   fixtureEpoch,
		},
		{
			ID:          "conn2",
			PairKey:     models.PairKey("user3", "user1"),
			RequesterID: "user3",
			RecipientID: "user1",
			Status:      models.StatusAccepted,
			CreatedAt:   fixtureEpoch.Add(-24 * time.Hour),
		},
	}
}

// FixtureMessages returns the seed conversation between user1 and user3.
func FixtureMessages() []models.Message {
	return []models.Message{
		{
			ID:          "msg1",
			Seq:         1,
			SenderID:    "user3",
			RecipientID: "user1",
			Content:     "Hey! Saw your profile, are you still looking for a data scientist?",
			Read:        true,
			CreatedAt:   fixtureEpoch.Add(-23 * time.Hour),
		},
		{
			ID:          "msg2",
			Seq:         2,
			SenderID:    "user1",
			RecipientID: "user3",
			Content:     "Yes! Would love to team up for the next hackathon.",
			Read:        true,
			CreatedAt:   fixtureEpoch.Add(-22 * time.Hour),
		},
	}
}
