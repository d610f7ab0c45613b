// Command admin manages groups and staff accounts from the shell.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/models"
	"yatube/internal/services"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  admin create-group -title <title> -slug <slug> [-description <text>]")
	fmt.Println("  admin list-groups")
	fmt.Println("  admin promote <username>   - Grant staff access")
	fmt.Println("  admin demote <username>    - Revoke staff access")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	svc := services.New(conn, cache.Nop{}, cfg)
	ctx := context.Background()

	switch os.Args[1] {
	case "create-group":
		fs := flag.NewFlagSet("create-group", flag.ExitOnError)
		title := fs.String("title", "", "Group title")
		slug := fs.String("slug", "", "URL slug")
		description := fs.String("description", "", "Group description")
		_ = fs.Parse(os.Args[2:])

		group, err := svc.Groups.Create(ctx, *title, *slug, *description)
		if err != nil {
			log.Fatalf("Failed to create group: %v", err)
		}
		fmt.Printf("Created group %d: %s (/group/%s/)\n", group.ID, group.Title, group.Slug)

	case "list-groups":
		groups, err := svc.Groups.List(ctx)
		if err != nil {
			log.Fatalf("Failed to list groups: %v", err)
		}
		for _, g := range groups {
			fmt.Printf("%4d  %-30s %-20s %d posts\n", g.ID, g.Title, g.Slug, g.PostCount)
		}

	case "promote", "demote":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		user, err := svc.Users.GetByUsername(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Failed to find user: %v", err)
		}
		staff := os.Args[1] == "promote"
		if err := conn.Model(&models.User{}).Where("id = ?", user.ID).Update("is_staff", staff).Error; err != nil {
			log.Fatalf("Failed to update user: %v", err)
		}
		fmt.Printf("%s is_staff=%v\n", user.Username, staff)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}
