package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/database"
)

const (
	defaultClubID  = "demo-club"
	defaultPlayers = 24
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":         "padel.db",
		"MIGRATIONS_DIR":  "./migrations",
		"SEED_CLUB_ID":    defaultClubID,
		"SEED_PLAYERS":    strconv.Itoa(defaultPlayers),
		"SEED_RANDOMNESS": "1",
	}
	for _, key := range []string{"DB_NAME", "MIGRATIONS_DIR", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "PLAYTOMIC_TENANT_ID", "SEED_CLUB_ID", "SEED_PLAYERS", "SEED_RANDOMNESS"} {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			config[key] = value
		}
	}
	return config
}

var (
	firstNames = []string{"Anna", "Bo", "Cai", "Dina", "Emil", "Freja", "Gustav", "Hanne", "Ida", "Jonas", "Karla", "Lars"}
	lastNames  = []string{"Holm", "Berg", "Lund", "Dahl", "Krog", "Vang"}
	sides      = []club.Side{club.SideLeft, club.SideRight, club.SideBoth, club.SideNone}
	genders    = []club.Gender{club.GenderMale, club.GenderFemale}
)

// demoPlayers builds n players with skills spread around 3.0, reproducible
// for a given seed.
func demoPlayers(clubID string, n int, seed uint64) []club.PlayerRating {
	r := rand.New(rand.NewPCG(seed, seed))
	players := make([]club.PlayerRating, 0, n)
	for i := 0; i < n; i++ {
		skill := math.Round((3.0+r.NormFloat64()*0.8)*100) / 100
		skill = math.Max(0.5, math.Min(7, skill))
		players = append(players, club.PlayerRating{
			ID:            uuid.NewString(),
			ClubID:        clubID,
			Name:          fmt.Sprintf("%s %s", firstNames[i%len(firstNames)], lastNames[r.IntN(len(lastNames))]),
			Skill:         skill,
			Mu:            skill,
			Sigma:         1,
			PreferredSide: sides[r.IntN(len(sides))],
			Gender:        genders[r.IntN(len(genders))],
			MatchesPlayed: r.IntN(40),
		})
	}
	return players
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	n, err := strconv.Atoi(cfg["SEED_PLAYERS"])
	if err != nil || n < 0 {
		log.Fatalf("Invalid SEED_PLAYERS value %q", cfg["SEED_PLAYERS"])
	}
	seed, err := strconv.ParseUint(cfg["SEED_RANDOMNESS"], 10, 64)
	if err != nil {
		log.Fatalf("Invalid SEED_RANDOMNESS value %q", cfg["SEED_RANDOMNESS"])
	}

	store := club.New(db)
	clubID := cfg["SEED_CLUB_ID"]
	if err := store.UpsertClub(club.Club{ID: clubID, Name: "Demo Padel Club", PlaytomicTenantID: cfg["PLAYTOMIC_TENANT_ID"]}); err != nil {
		log.Fatalf("Failed to seed club: %s", err)
	}

	players := demoPlayers(clubID, n, seed)
	if err := store.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to seed players: %s", err)
	}

	eligible, err := store.ListEligible(clubID, 10)
	if err != nil {
		log.Fatalf("Failed to count eligible players: %s", err)
	}
	log.Info("Seeding complete", "clubID", clubID, "players", len(players), "eligible", len(eligible))
}
