// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post implements the post feed: posts with embedded likes and comments.

Likes and comments live inside their post and are kept newest first. A user
likes a post at most once. Only a post's author may delete it and only a
comment's author may delete that comment.
*/
package post

import "time"

// # Domain Entities

// Post is a status update. Name and Avatar are snapshots of the author taken
// at creation and are not refreshed later.
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// Like records one user's like.
type Like struct {
	User string `json:"user"`
}

// Comment is a reply on a post, carrying its own author snapshot.
type Comment struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

// # Field Identifiers

const (
	FieldText      = "text"
	FieldPostID    = "postID"
	FieldCommentID = "commentID"
)

// TextMaxLength caps post and comment bodies.
const TextMaxLength = 5000
