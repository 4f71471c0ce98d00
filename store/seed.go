package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/inkwellhq/inkwell/models"
)

// SeedPost is a post entry of a TOML seed file.
type SeedPost struct {
	ID        string    `toml:"id"`
	Title     string    `toml:"title"`
	Content   string    `toml:"content"`
	Author    string    `toml:"author"`
	CreatedAt time.Time `toml:"created_at"`
}

// SeedFile is the top-level layout of a seed file:
//
//	[[posts]]
//	id = "1"
//	title = "..."
//	content = """..."""
//	author = "..."
//	created_at = 2023-04-15T10:30:00Z
type SeedFile struct {
	Posts []SeedPost `toml:"posts"`
}

// LoadSeedFile reads seed posts from a TOML file.
func LoadSeedFile(path string) ([]models.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}

	var file SeedFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing seed file: %w", err)
	}

	posts := make([]models.Post, 0, len(file.Posts))
	for i, sp := range file.Posts {
		if sp.ID == "" {
			return nil, fmt.Errorf("seed post %d: missing id", i)
		}
		if sp.CreatedAt.IsZero() {
			return nil, fmt.Errorf("seed post %q: missing created_at", sp.ID)
		}
		posts = append(posts, models.Post{
			ID:        sp.ID,
			Title:     sp.Title,
			Content:   sp.Content,
			Author:    sp.Author,
			CreatedAt: sp.CreatedAt.UTC(),
		})
	}
	return posts, nil
}

// Seed inserts posts into s in order. It stops at the first failure,
// which is ErrDuplicateID when two seed posts share an id.
func Seed(ctx context.Context, s Store, posts []models.Post) error {
	for _, p := range posts {
		if err := s.Insert(ctx, p); err != nil {
			return fmt.Errorf("seed post %q: %w", p.ID, err)
		}
	}
	return nil
}

// DefaultSeed returns the sample posts the blog starts with.
func DefaultSeed() []models.Post {
	return []models.Post{
		{
			ID:    "1",
			Title: "Getting Started with React",
			Content: "React is a popular JavaScript library for building user interfaces, especially single-page applications. It's used for handling the view layer in web and mobile apps. React allows you to design simple views for each state in your application, and it will efficiently update and render the right components when your data changes.\n\n" +
				"React was created by Jordan Walke, a software engineer at Facebook. It was first deployed on Facebook's News Feed in 2011 and later on Instagram in 2012. It was open-sourced at JSConf US in May 2013.\n\n" +
				"One of the most interesting things about React is its use of a virtual DOM (Document Object Model) to improve performance. Instead of manipulating the browser's DOM directly, React creates a virtual DOM in memory, where it does all the necessary manipulating before making the changes in the browser DOM.",
			Author:    "Jane Doe",
			CreatedAt: time.Date(2023, 4, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:    "2",
			Title: "Advanced TypeScript Techniques",
			Content: "TypeScript is a superset of JavaScript that adds static typing to the language. It's designed for the development of large applications and transpiles to JavaScript.\n\n" +
				"In this post, we'll explore some advanced TypeScript techniques that can help you write more robust code. We'll cover topics like generics, utility types, and conditional types.\n\n" +
				"Generics are a way to create reusable components that can work with a variety of types rather than a single one. They can be used to create strongly-typed collections, functions, classes, and more.\n\n" +
				"Utility types are predefined generic types that come with TypeScript. They provide common type transformations that are useful in many situations. Some examples include Partial<T>, Required<T>, Pick<T, K>, and Omit<T, K>.",
			Author:    "John Smith",
			CreatedAt: time.Date(2023, 5, 20, 14, 45, 0, 0, time.UTC),
		},
		{
			ID:    "3",
			Title: "Building a REST API with Node.js and Express",
			Content: "Node.js and Express are powerful tools for building RESTful APIs. Node.js is a JavaScript runtime built on Chrome's V8 JavaScript engine, while Express is a minimal and flexible Node.js web application framework.\n\n" +
				"In this post, we'll walk through the process of building a RESTful API with Node.js and Express. We'll cover topics like routing, middleware, error handling, and database integration.\n\n" +
				"Routing refers to how an application's endpoints (URIs) respond to client requests. Express provides a simple way to define routes for different HTTP methods like GET, POST, PUT, and DELETE.\n\n" +
				"Middleware functions are functions that have access to the request object, the response object, and the next middleware function in the application's request-response cycle. They can execute any code, make changes to the request and response objects, end the request-response cycle, and call the next middleware function.",
			Author:    "Alex Johnson",
			CreatedAt: time.Date(2023, 6, 10, 9, 15, 0, 0, time.UTC),
		},
	}
}
