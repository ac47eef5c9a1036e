package repositories

import "muse/app/models"

var postFixture = models.Post{
	Title:       "Title",
	Description: "Description",
	Song:        "Song",
	Artist:      "Artist",
}
