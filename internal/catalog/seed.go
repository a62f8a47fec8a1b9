package catalog

import (
	"context"
	"encoding/json"
)

// SeedCourseTitle is the title the seed is keyed on; a course with this title
// already present means the seed has run and is returned as-is.
const SeedCourseTitle = "Python Fundamentals"

// SeedPythonCourse creates the built-in Python Fundamentals course with its
// first chapter, lessons, and quiz. Idempotent: repeat calls return the
// existing course without writing anything.
func SeedPythonCourse(ctx context.Context, store Store) (Course, error) {
	existing, err := store.ListCourses(ctx, TrackProgramming)
	if err != nil {
		return Course{}, err
	}
	for _, c := range existing {
		if c.Title == SeedCourseTitle {
			return c, nil
		}
	}

	course, err := store.CreateCourse(ctx, Course{
		Title:         SeedCourseTitle,
		Description:   "Master Python programming from basics to advanced concepts with hands-on exercises",
		Track:         TrackProgramming,
		Language:      "python",
		Difficulty:    "beginner",
		TotalChapters: 8,
	})
	if err != nil {
		return Course{}, err
	}

	chapter, err := store.CreateChapter(ctx, Chapter{
		CourseID:   course.ID,
		Title:      "Introduction & Variables",
		Content:    "Learn about Python basics and how to work with variables",
		OrderIndex: 1,
	})
	if err != nil {
		return Course{}, err
	}

	lessons := []struct {
		title    string
		typ      string
		content  any
		xpReward int
	}{
		{
			title: "What is Python?",
			typ:   LessonTheory,
			content: TheoryContent{
				Text: "Python is a powerful, easy-to-learn programming language. It's used for web development, data science, artificial intelligence, and more.",
				KeyPoints: []string{
					"Python is readable and easy to understand",
					"It's used by companies like Google, Instagram, and Spotify",
					"Perfect for beginners and professionals alike",
				},
			},
			xpReward: 5,
		},
		{
			title: "Creating Variables",
			typ:   LessonCodeExercise,
			content: CodeExerciseContent{
				Instructions:   "Variables store data that can be used later. Create a name variable and an age variable, then print them.",
				StarterCode:    "# Create your variables here\nname = \nage = \n\n# Print them\nprint(name)\nprint(age)",
				Solution:       "name = \"Alice\"\nage = 25\n\nprint(name)\nprint(age)",
				ExpectedOutput: "Alice\n25",
				ExerciseTopic:  "variables",
				Hints: []string{
					"Use quotes around text values like names",
					"Numbers don't need quotes",
					"Use the print() function to display values",
				},
			},
			xpReward: 15,
		},
		{
			title: "Variable Types Quiz",
			typ:   LessonQuiz,
			content: QuizContent{
				Question: "Which of these is the correct way to create a text variable in Python?",
				Options: []string{
					"name = Alice",
					"name = \"Alice\"",
					"name = (Alice)",
					"name = [Alice]",
				},
				CorrectAnswer: 1,
				Explanation:   "Text values (strings) must be surrounded by quotes in Python.",
			},
			xpReward: 10,
		},
	}

	var quizLesson Lesson
	for i, l := range lessons {
		blob, err := json.Marshal(l.content)
		if err != nil {
			return Course{}, err
		}
		created, err := store.CreateLesson(ctx, Lesson{
			ChapterID:  chapter.ID,
			Title:      l.title,
			Type:       l.typ,
			Content:    blob,
			OrderIndex: i + 1,
			XPReward:   l.xpReward,
		})
		if err != nil {
			return Course{}, err
		}
		if l.typ == LessonQuiz {
			quizLesson = created
		}
	}

	// Back the quiz lesson with a gradeable quiz row.
	if quizLesson.ID != "" {
		var qc QuizContent
		if err := json.Unmarshal(quizLesson.Content, &qc); err != nil {
			return Course{}, err
		}
		if _, err := store.CreateQuiz(ctx, Quiz{
			LessonID:      quizLesson.ID,
			Question:      qc.Question,
			Options:       qc.Options,
			CorrectAnswer: qc.CorrectAnswer,
			Explanation:   qc.Explanation,
		}); err != nil {
			return Course{}, err
		}
	}

	return course, nil
}
