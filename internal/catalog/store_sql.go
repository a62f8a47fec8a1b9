package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codehabit/codehabit-lms/internal/activity"
	"github.com/codehabit/codehabit-lms/internal/gamify"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	events *activity.EventRepo
	now    func() time.Time
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{
		db:     db,
		driver: driver,
		events: activity.NewEventRepo(db),
		now:    time.Now,
	}
}

// --- Users ---

func (s *SQLStore) GetUser(ctx context.Context, id string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

const userCols = `id,email,password_hash,first_name,last_name,profile_image_url,xp,level,streak_days,last_active_at,created_at,updated_at`

func (s *SQLStore) scanUser(row *sql.Row) (User, error) {
	var u User
	var lastActive sql.NullInt64
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.ProfileImageURL, &u.XP, &u.Level, &u.StreakDays, &lastActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return User{}, err
	}
	u.LastActiveAt = lastActive.Int64
	return u, nil
}

// UpsertUser inserts the user on first login and refreshes the mutable
// profile fields afterwards. XP/level/streak are owned by the progress
// paths and never overwritten here.
func (s *SQLStore) UpsertUser(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Level < 1 {
		u.Level = 1
	}
	now := s.now().Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id,email,password_hash,first_name,last_name,profile_image_url,xp,level,streak_days,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
		  email=excluded.email,
		  first_name=excluded.first_name,
		  last_name=excluded.last_name,
		  profile_image_url=excluded.profile_image_url,
		  updated_at=excluded.updated_at`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.ProfileImageURL,
		u.XP, u.Level, u.StreakDays, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return s.GetUser(ctx, u.ID)
}

// --- Courses ---

const courseCols = `id,title,description,track,language,difficulty,total_chapters,created_at`

func (s *SQLStore) ListCourses(ctx context.Context, track string) ([]Course, error) {
	q := `SELECT ` + courseCols + ` FROM courses ORDER BY title`
	args := []any{}
	if track != "" {
		q = `SELECT ` + courseCols + ` FROM courses WHERE track=$1 ORDER BY title`
		args = append(args, track)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Course{}
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Track, &c.Language,
			&c.Difficulty, &c.TotalChapters, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (Course, error) {
	var c Course
	err := s.db.QueryRowContext(ctx, `SELECT `+courseCols+` FROM courses WHERE id=$1`, id).
		Scan(&c.ID, &c.Title, &c.Description, &c.Track, &c.Language, &c.Difficulty, &c.TotalChapters, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Course{}, fmt.Errorf("course: %w", ErrNotFound)
	}
	return c, err
}

func (s *SQLStore) CreateCourse(ctx context.Context, c Course) (Course, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = s.now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO courses (id,title,description,track,language,difficulty,total_chapters,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.Title, c.Description, c.Track, c.Language, c.Difficulty, c.TotalChapters, c.CreatedAt)
	if err != nil {
		return Course{}, err
	}
	return c, nil
}

// --- Chapters ---

const chapterCols = `id,course_id,title,content,code_example,exercise,order_index,created_at`

func (s *SQLStore) ListChapters(ctx context.Context, courseID string) ([]Chapter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+chapterCols+` FROM chapters WHERE course_id=$1 ORDER BY order_index`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Chapter{}
	for rows.Next() {
		var ch Chapter
		if err := rows.Scan(&ch.ID, &ch.CourseID, &ch.Title, &ch.Content, &ch.CodeExample,
			&ch.Exercise, &ch.OrderIndex, &ch.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetChapter(ctx context.Context, id string) (Chapter, error) {
	var ch Chapter
	err := s.db.QueryRowContext(ctx, `SELECT `+chapterCols+` FROM chapters WHERE id=$1`, id).
		Scan(&ch.ID, &ch.CourseID, &ch.Title, &ch.Content, &ch.CodeExample, &ch.Exercise, &ch.OrderIndex, &ch.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Chapter{}, fmt.Errorf("chapter: %w", ErrNotFound)
	}
	return ch, err
}

func (s *SQLStore) CreateChapter(ctx context.Context, ch Chapter) (Chapter, error) {
	if _, err := s.GetCourse(ctx, ch.CourseID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Chapter{}, ErrBadReference
		}
		return Chapter{}, err
	}
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	ch.CreatedAt = s.now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chapters (id,course_id,title,content,code_example,exercise,order_index,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		ch.ID, ch.CourseID, ch.Title, ch.Content, ch.CodeExample, ch.Exercise, ch.OrderIndex, ch.CreatedAt)
	if err != nil {
		return Chapter{}, err
	}
	return ch, nil
}

// --- Lessons ---

const lessonCols = `id,chapter_id,title,type,content_json,order_index,xp_reward,created_at`

func (s *SQLStore) ListLessons(ctx context.Context, chapterID string) ([]Lesson, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+lessonCols+` FROM lessons WHERE chapter_id=$1 ORDER BY order_index`, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Lesson{}
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetLesson(ctx context.Context, id string) (Lesson, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+lessonCols+` FROM lessons WHERE id=$1`, id)
	l, err := scanLesson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Lesson{}, fmt.Errorf("lesson: %w", ErrNotFound)
	}
	return l, err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanLesson(row rowScanner) (Lesson, error) {
	var l Lesson
	var content string
	if err := row.Scan(&l.ID, &l.ChapterID, &l.Title, &l.Type, &content,
		&l.OrderIndex, &l.XPReward, &l.CreatedAt); err != nil {
		return Lesson{}, err
	}
	l.Content = json.RawMessage(content)
	return l, nil
}

func (s *SQLStore) CreateLesson(ctx context.Context, l Lesson) (Lesson, error) {
	if _, err := s.GetChapter(ctx, l.ChapterID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Lesson{}, ErrBadReference
		}
		return Lesson{}, err
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.XPReward == 0 {
		l.XPReward = 10
	}
	if len(l.Content) == 0 {
		l.Content = json.RawMessage(`{}`)
	}
	l.CreatedAt = s.now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lessons (id,chapter_id,title,type,content_json,order_index,xp_reward,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		l.ID, l.ChapterID, l.Title, l.Type, string(l.Content), l.OrderIndex, l.XPReward, l.CreatedAt)
	if err != nil {
		return Lesson{}, err
	}
	return l, nil
}

// --- Chapter progress ---

func (s *SQLStore) ListChapterProgress(ctx context.Context, userID, courseID string) ([]ChapterProgress, error) {
	q := `SELECT id,user_id,course_id,chapter_id,completed,completed_at,created_at
	        FROM user_progress WHERE user_id=$1 ORDER BY created_at DESC, id`
	args := []any{userID}
	if courseID != "" {
		q = `SELECT id,user_id,course_id,chapter_id,completed,completed_at,created_at
		       FROM user_progress WHERE user_id=$1 AND course_id=$2 ORDER BY created_at DESC, id`
		args = append(args, courseID)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ChapterProgress{}
	for rows.Next() {
		var p ChapterProgress
		var completedAt sql.NullInt64
		if err := rows.Scan(&p.ID, &p.UserID, &p.CourseID, &p.ChapterID, &p.Completed, &completedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CompletedAt = completedAt.Int64
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpsertChapterProgress writes the single progress row for (user, chapter).
// completed_at is stamped on the false->true transition and preserved on
// repeat completions; marking a chapter incomplete clears it.
func (s *SQLStore) UpsertChapterProgress(ctx context.Context, p ChapterProgress) (ChapterProgress, error) {
	if _, err := s.GetChapter(ctx, p.ChapterID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ChapterProgress{}, ErrBadReference
		}
		return ChapterProgress{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ChapterProgress{}, err
	}
	defer tx.Rollback()

	var wasCompleted bool
	err = tx.QueryRowContext(ctx,
		`SELECT completed FROM user_progress WHERE user_id=$1 AND chapter_id=$2`,
		p.UserID, p.ChapterID).Scan(&wasCompleted)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return ChapterProgress{}, err
	}

	now := s.now().Unix()
	var completedAt any
	if p.Completed {
		completedAt = now
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_progress (id,user_id,course_id,chapter_id,completed,completed_at,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (user_id, chapter_id) DO UPDATE SET
		  completed=excluded.completed,
		  completed_at=CASE
		    WHEN excluded.completed AND user_progress.completed_at IS NOT NULL THEN user_progress.completed_at
		    ELSE excluded.completed_at
		  END`,
		uuid.NewString(), p.UserID, p.CourseID, p.ChapterID, p.Completed, completedAt, now)
	if err != nil {
		return ChapterProgress{}, err
	}

	if p.Completed && !wasCompleted {
		ev := activity.Event{UserID: p.UserID, Type: EventChapterCompleted, Key: p.ChapterID,
			DataJSON: fmt.Sprintf(`{"course_id":%q}`, p.CourseID)}
		if err := s.events.Append(ctx, tx, ev); err != nil {
			return ChapterProgress{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return ChapterProgress{}, err
	}
	return s.getChapterProgress(ctx, p.UserID, p.ChapterID)
}

func (s *SQLStore) getChapterProgress(ctx context.Context, userID, chapterID string) (ChapterProgress, error) {
	var p ChapterProgress
	var completedAt sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,course_id,chapter_id,completed,completed_at,created_at
		   FROM user_progress WHERE user_id=$1 AND chapter_id=$2`, userID, chapterID).
		Scan(&p.ID, &p.UserID, &p.CourseID, &p.ChapterID, &p.Completed, &completedAt, &p.CreatedAt)
	if err != nil {
		return ChapterProgress{}, err
	}
	p.CompletedAt = completedAt.Int64
	return p, nil
}

// --- Lesson progress ---

func (s *SQLStore) ListLessonProgress(ctx context.Context, userID, lessonID string) ([]LessonProgress, error) {
	q := `SELECT id,user_id,lesson_id,completed,attempts,last_attempt_code,completed_at,created_at
	        FROM user_lesson_progress WHERE user_id=$1 ORDER BY created_at DESC, id`
	args := []any{userID}
	if lessonID != "" {
		q = `SELECT id,user_id,lesson_id,completed,attempts,last_attempt_code,completed_at,created_at
		       FROM user_lesson_progress WHERE user_id=$1 AND lesson_id=$2 ORDER BY created_at DESC, id`
		args = append(args, lessonID)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []LessonProgress{}
	for rows.Next() {
		var p LessonProgress
		var completedAt sql.NullInt64
		if err := rows.Scan(&p.ID, &p.UserID, &p.LessonID, &p.Completed, &p.Attempts,
			&p.LastAttemptCode, &completedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CompletedAt = completedAt.Int64
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpsertLessonProgress writes the single progress row for (user, lesson).
// The first false->true transition credits the lesson's XP reward to the
// user, recomputes level, and bumps the activity streak, all in one
// transaction.
func (s *SQLStore) UpsertLessonProgress(ctx context.Context, p LessonProgress) (LessonProgress, error) {
	lesson, err := s.GetLesson(ctx, p.LessonID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LessonProgress{}, ErrBadReference
		}
		return LessonProgress{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LessonProgress{}, err
	}
	defer tx.Rollback()

	var wasCompleted bool
	err = tx.QueryRowContext(ctx,
		`SELECT completed FROM user_lesson_progress WHERE user_id=$1 AND lesson_id=$2`,
		p.UserID, p.LessonID).Scan(&wasCompleted)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return LessonProgress{}, err
	}

	nowT := s.now()
	now := nowT.Unix()
	var completedAt any
	if p.Completed {
		completedAt = now
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_lesson_progress (id,user_id,lesson_id,completed,attempts,last_attempt_code,completed_at,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (user_id, lesson_id) DO UPDATE SET
		  completed=excluded.completed,
		  attempts=excluded.attempts,
		  last_attempt_code=excluded.last_attempt_code,
		  completed_at=CASE
		    WHEN excluded.completed AND user_lesson_progress.completed_at IS NOT NULL THEN user_lesson_progress.completed_at
		    ELSE excluded.completed_at
		  END`,
		uuid.NewString(), p.UserID, p.LessonID, p.Completed, p.Attempts, p.LastAttemptCode, completedAt, now)
	if err != nil {
		return LessonProgress{}, err
	}

	if p.Completed && !wasCompleted {
		if err := s.creditXP(ctx, tx, p.UserID, lesson.XPReward, nowT); err != nil {
			return LessonProgress{}, err
		}
		ev := activity.Event{UserID: p.UserID, Type: EventLessonCompleted, Key: p.LessonID,
			DataJSON: fmt.Sprintf(`{"xp_reward":%d}`, lesson.XPReward)}
		if err := s.events.Append(ctx, tx, ev); err != nil {
			return LessonProgress{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LessonProgress{}, err
	}
	return s.getLessonProgress(ctx, p.UserID, p.LessonID)
}

func (s *SQLStore) getLessonProgress(ctx context.Context, userID, lessonID string) (LessonProgress, error) {
	var p LessonProgress
	var completedAt sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT id,user_id,lesson_id,completed,attempts,last_attempt_code,completed_at,created_at
		   FROM user_lesson_progress WHERE user_id=$1 AND lesson_id=$2`, userID, lessonID).
		Scan(&p.ID, &p.UserID, &p.LessonID, &p.Completed, &p.Attempts, &p.LastAttemptCode, &completedAt, &p.CreatedAt)
	if err != nil {
		return LessonProgress{}, err
	}
	p.CompletedAt = completedAt.Int64
	return p, nil
}

// creditXP applies the XP award and derived level/streak inside the caller's
// transaction. Unknown users (e.g. seed scripts) are a no-op rather than an
// error.
func (s *SQLStore) creditXP(ctx context.Context, tx *sql.Tx, userID string, points int, now time.Time) error {
	var xp, streak int
	var lastActive sql.NullInt64
	err := tx.QueryRowContext(ctx,
		`SELECT xp, streak_days, last_active_at FROM users WHERE id=$1`, userID).
		Scan(&xp, &streak, &lastActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	xp += points
	streak = gamify.NextStreak(streak, lastActive.Int64, now)
	_, err = tx.ExecContext(ctx,
		`UPDATE users SET xp=$1, level=$2, streak_days=$3, last_active_at=$4, updated_at=$5 WHERE id=$6`,
		xp, gamify.LevelForXP(xp), streak, now.Unix(), now.Unix(), userID)
	return err
}

// --- Quizzes ---

func (s *SQLStore) ListQuizzes(ctx context.Context, lessonID string) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,lesson_id,question,options_json,correct_answer,explanation,created_at
		   FROM quizzes WHERE lesson_id=$1 ORDER BY created_at, id`, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,lesson_id,question,options_json,correct_answer,explanation,created_at
		   FROM quizzes WHERE id=$1`, id)
	q, err := scanQuiz(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Quiz{}, fmt.Errorf("quiz: %w", ErrNotFound)
	}
	return q, err
}

func scanQuiz(row rowScanner) (Quiz, error) {
	var q Quiz
	var options string
	if err := row.Scan(&q.ID, &q.LessonID, &q.Question, &options, &q.CorrectAnswer, &q.Explanation, &q.CreatedAt); err != nil {
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) CreateQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	if _, err := s.GetLesson(ctx, q.LessonID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Quiz{}, ErrBadReference
		}
		return Quiz{}, err
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return Quiz{}, err
	}
	q.CreatedAt = s.now().Unix()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id,lesson_id,question,options_json,correct_answer,explanation,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		q.ID, q.LessonID, q.Question, string(oj), q.CorrectAnswer, q.Explanation, q.CreatedAt)
	if err != nil {
		return Quiz{}, err
	}
	return q, nil
}

// SubmitQuizAttempt grades synchronously against the stored answer index and
// persists the attempt on both outcomes.
func (s *SQLStore) SubmitQuizAttempt(ctx context.Context, userID, quizID string, selected int) (QuizAttempt, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return QuizAttempt{}, ErrBadReference
		}
		return QuizAttempt{}, err
	}

	a := QuizAttempt{
		ID:             uuid.NewString(),
		UserID:         userID,
		QuizID:         quizID,
		SelectedAnswer: selected,
		IsCorrect:      selected == quiz.CorrectAnswer,
		AttemptedAt:    s.now().Unix(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return QuizAttempt{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO quiz_attempts (id,user_id,quiz_id,selected_answer,is_correct,attempted_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.UserID, a.QuizID, a.SelectedAnswer, a.IsCorrect, a.AttemptedAt)
	if err != nil {
		return QuizAttempt{}, err
	}
	ev := activity.Event{UserID: userID, Type: EventQuizAttempted, Key: quizID,
		DataJSON: fmt.Sprintf(`{"is_correct":%t}`, a.IsCorrect)}
	if err := s.events.Append(ctx, tx, ev); err != nil {
		return QuizAttempt{}, err
	}
	if err := tx.Commit(); err != nil {
		return QuizAttempt{}, err
	}
	return a, nil
}

func (s *SQLStore) ListQuizAttempts(ctx context.Context, userID, quizID string) ([]QuizAttempt, error) {
	q := `SELECT id,user_id,quiz_id,selected_answer,is_correct,attempted_at
	        FROM quiz_attempts WHERE user_id=$1 ORDER BY attempted_at DESC, id`
	args := []any{userID}
	if quizID != "" {
		q = `SELECT id,user_id,quiz_id,selected_answer,is_correct,attempted_at
		       FROM quiz_attempts WHERE user_id=$1 AND quiz_id=$2 ORDER BY attempted_at DESC, id`
		args = append(args, quizID)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []QuizAttempt{}
	for rows.Next() {
		var a QuizAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizID, &a.SelectedAnswer, &a.IsCorrect, &a.AttemptedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// --- Certificates ---

func (s *SQLStore) IssueCertificate(ctx context.Context, userID, courseID string) (Certificate, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Certificate{}, ErrBadReference
		}
		return Certificate{}, err
	}
	c := Certificate{
		ID:       uuid.NewString(),
		UserID:   userID,
		CourseID: courseID,
		IssuedAt: s.now().Unix(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Certificate{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO certificates (id,user_id,course_id,issued_at) VALUES ($1,$2,$3,$4)`,
		c.ID, c.UserID, c.CourseID, c.IssuedAt)
	if err != nil {
		return Certificate{}, err
	}
	ev := activity.Event{UserID: userID, Type: EventCertificateIssued, Key: courseID, DataJSON: `{}`}
	if err := s.events.Append(ctx, tx, ev); err != nil {
		return Certificate{}, err
	}
	if err := tx.Commit(); err != nil {
		return Certificate{}, err
	}
	return c, nil
}

func (s *SQLStore) ListCertificates(ctx context.Context, userID string) ([]Certificate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,user_id,course_id,issued_at FROM certificates
		  WHERE user_id=$1 ORDER BY issued_at DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Certificate{}
	for rows.Next() {
		var c Certificate
		if err := rows.Scan(&c.ID, &c.UserID, &c.CourseID, &c.IssuedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// --- Activity ---

func (s *SQLStore) ListActivity(ctx context.Context, userID string, limit int) ([]ActivityEvent, error) {
	events, err := s.events.List(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ActivityEvent, 0, len(events))
	for _, e := range events {
		out = append(out, ActivityEvent{
			Seq:       e.Seq,
			UserID:    e.UserID,
			Type:      e.Type,
			Key:       e.Key,
			Data:      json.RawMessage(e.DataJSON),
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}
