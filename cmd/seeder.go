package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"ticket_threads", "tickets", "user_teams", "teams", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Email string
			Name  string
		}{
			{"fadhil@mail.com", "Fadhil"},
			{"dina@mail.com", "Dina"},
			{"padil@mail.com", "Padil Lead"},
		}

		userIDs := map[string]int64{}
		for _, u := range users {
			var id int64
			row := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&id); err == nil {
				fmt.Println("user already exists:", u.Email)
				userIDs[u.Email] = id
				continue
			}

			if err := db.Exec("INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", u.Email, u.Name, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			if err := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row().Scan(&id); err != nil {
				log.Fatalf("failed to lookup user %s: %v", u.Email, err)
			}
			userIDs[u.Email] = id
			fmt.Println("Seeded user:", u.Email)
		}

		// team level permissions apply to every member of the team
		teams := []struct {
			Name        string
			Permissions string
		}{
			{"support", `["ticket:read:assigned:team:any","ticket:read:createdby:team:any","ticket:action:thread:create:assigned:team:any"]`},
			{"billing", `["ticket:read:assigned:team:unclaimed","ticket:read:createdby:self"]`},
		}

		teamIDs := map[string]int64{}
		for _, t := range teams {
			var id int64
			row := db.Raw("SELECT id FROM teams WHERE name = ?", t.Name).Row()
			if err := row.Scan(&id); err == nil {
				teamIDs[t.Name] = id
				continue
			}

			if err := db.Exec("INSERT INTO teams (name, permissions, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())", t.Name, t.Permissions).Error; err != nil {
				log.Fatalf("failed to insert team %s: %v", t.Name, err)
			}
			if err := db.Raw("SELECT id FROM teams WHERE name = ?", t.Name).Row().Scan(&id); err != nil {
				log.Fatalf("failed to lookup team %s: %v", t.Name, err)
			}
			teamIDs[t.Name] = id
			fmt.Println("Seeded team:", t.Name)
		}

		// membership level permissions are per seat; the lead seat can
		// force-claim and move any ticket between any statuses
		memberships := []struct {
			Email       string
			Team        string
			Permissions string
		}{
			{"fadhil@mail.com", "support", `["ticket:action:claim:team:unclaimed","ticket:action:change:status:from:1:to:2:assigned:self"]`},
			{"dina@mail.com", "billing", `["ticket:action:claim:team:unclaimed"]`},
			{"padil@mail.com", "support", `["ticket:read:assigned:any","ticket:action:claim:any:force","ticket:action:change:status:from:any:to:any","ticket:action:change:assigned:any","ticket:action:thread:create:any"]`},
		}

		for _, m := range memberships {
			userID := userIDs[m.Email]
			teamID := teamIDs[m.Team]

			var exists int
			if err := db.Raw("SELECT 1 FROM user_teams WHERE user_id = ? AND team_id = ?", userID, teamID).Row().Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO user_teams (user_id, team_id, permissions, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", userID, teamID, m.Permissions).Error; err != nil {
				log.Fatalf("failed to insert membership %s/%s: %v", m.Email, m.Team, err)
			}
			fmt.Printf("Seeded membership: %s in %s\n", m.Email, m.Team)
		}

		statuses := []struct {
			Name      string
			IsClosed  bool
			SortOrder int
		}{
			{"open", false, 1},
			{"in_progress", false, 2},
			{"resolved", true, 3},
			{"closed", true, 4},
		}

		for _, s := range statuses {
			var exists int
			if err := db.Raw("SELECT 1 FROM ticket_statuses WHERE name = ?", s.Name).Row().Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO ticket_statuses (name, is_closed, is_active, sort_order, created_at, updated_at) VALUES (?, ?, true, ?, now(), now())", s.Name, s.IsClosed, s.SortOrder).Error; err != nil {
					log.Fatalf("failed to insert status %s: %v", s.Name, err)
				}
				fmt.Println("Seeded status:", s.Name)
			}
		}

		priorities := []struct {
			Name      string
			SortOrder int
		}{
			{"low", 1},
			{"medium", 2},
			{"high", 3},
		}

		for _, p := range priorities {
			var exists int
			if err := db.Raw("SELECT 1 FROM ticket_priorities WHERE name = ?", p.Name).Row().Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO ticket_priorities (name, is_active, sort_order, created_at, updated_at) VALUES (?, true, ?, now(), now())", p.Name, p.SortOrder).Error; err != nil {
					log.Fatalf("failed to insert priority %s: %v", p.Name, err)
				}
				fmt.Println("Seeded priority:", p.Name)
			}
		}

		categories := []struct {
			Name string
			Desc string
		}{
			{"billing", "billing and invoicing problems"},
			{"access", "login and account access"},
			{"lain_lain", "everything else"},
		}

		for _, c := range categories {
			var exists int
			if err := db.Raw("SELECT 1 FROM ticket_categories WHERE name = ?", c.Name).Row().Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO ticket_categories (name, description, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())", c.Name, c.Desc).Error; err != nil {
					log.Fatalf("failed to insert category %s: %v", c.Name, err)
				}
				fmt.Println("Seeded category:", c.Name)
			}
		}

		// one unclaimed sample ticket sitting with the support team
		var ticketExists int
		if err := db.Raw("SELECT 1 FROM tickets WHERE subject = ?", "Cannot log in to dashboard").Row().Scan(&ticketExists); err != nil {
			var fadhilSeat int64
			if err := db.Raw("SELECT id FROM user_teams WHERE user_id = ? AND team_id = ?", userIDs["fadhil@mail.com"], teamIDs["support"]).Row().Scan(&fadhilSeat); err != nil {
				log.Fatalf("failed to lookup seat for sample ticket: %v", err)
			}

			if err := db.Exec(`INSERT INTO tickets
				(subject, description, current_status_id, current_priority_id, current_category_id,
				 assigned_team_id, assigned_user_team_id, created_by_team_id, created_by_user_team_id,
				 created_at, updated_at)
				SELECT ?, ?, s.id, p.id, c.id, ?, NULL, ?, ?, now(), now()
				FROM ticket_statuses s, ticket_priorities p, ticket_categories c
				WHERE s.name = 'open' AND p.name = 'medium' AND c.name = 'access'`,
				"Cannot log in to dashboard", "Customer reports a 403 after password reset.",
				teamIDs["support"], teamIDs["support"], fadhilSeat).Error; err != nil {
				log.Fatalf("failed to insert sample ticket: %v", err)
			}
			fmt.Println("Seeded sample ticket")
		}

		fmt.Println("Database seeded successfully")
	},
}
