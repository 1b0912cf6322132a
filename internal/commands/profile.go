package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"taskbuddy/internal/models"
	"taskbuddy/internal/storage"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	Long: `Show the signed-in profile, or update it with flags:

  taskbuddy profile --name "Ada L" --username ada --website https://example.org
  taskbuddy profile --avatar ./me.png`,
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()
		if user == nil {
			return
		}

		profile, err := app.Profiles.GetProfile(user.ID)
		if err != nil {
			fmt.Printf("Error loading profile: %v\n", err)
			return
		}
		if profile == nil {
			profile = &models.Profile{ID: user.ID, FullName: user.FullName}
		}

		changed := false
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			profile.FullName = name
			changed = true
		}
		if username, _ := cmd.Flags().GetString("username"); username != "" {
			profile.Username = username
			changed = true
		}
		if website, _ := cmd.Flags().GetString("website"); website != "" {
			profile.Website = website
			changed = true
		}
		if avatarPath, _ := cmd.Flags().GetString("avatar"); avatarPath != "" {
			url, err := uploadAvatar(user.ID, avatarPath)
			if err != nil {
				fmt.Printf("Error uploading avatar: %v\n", err)
				return
			}
			profile.AvatarURL = url
			changed = true
		}

		if changed {
			if err := app.Profiles.UpsertProfile(*profile); err != nil {
				fmt.Printf("Error updating profile: %v\n", err)
				return
			}
			fmt.Println("Profile updated.")
		}

		fmt.Printf("Name:     %s\n", profile.FullName)
		fmt.Printf("Username: %s\n", profile.Username)
		fmt.Printf("Website:  %s\n", profile.Website)
		fmt.Printf("Avatar:   %s\n", profile.AvatarURL)
	},
}

func uploadAvatar(userID, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s%s", userID, filepath.Ext(path))
	if err := app.Store.Upload(storage.BucketAvatars, name, data); err != nil {
		return "", err
	}
	return name, nil
}

func init() {
	profileCmd.Flags().StringP("name", "n", "", "Full name")
	profileCmd.Flags().StringP("username", "u", "", "Username")
	profileCmd.Flags().StringP("website", "w", "", "Website URL")
	profileCmd.Flags().StringP("avatar", "a", "", "Path to an avatar image")
}
