package validator

// Request DTOs for the admin API. Update requests use pointer fields so a
// partial update only touches the columns the client sent.

// ===== AUTH =====

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ===== SPEAKING =====

type SpeakingTestCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Difficulty  string  `json:"difficulty" validate:"required,oneof=Easy Intermediate Hard"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type SpeakingTestUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Difficulty  *string `json:"difficulty" validate:"omitempty,oneof=Easy Intermediate Hard"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type SpeakingQuestionCreateRequest struct {
	TestID          uint   `json:"test_id" validate:"required"`
	QuestionNumber  int    `json:"question_number" validate:"required,min=1"`
	Prompt          string `json:"prompt" validate:"required"`
	PreparationTime *int   `json:"preparation_time" validate:"omitempty,min=1"`
	ResponseTime    *int   `json:"response_time" validate:"omitempty,min=1"`
}

type SpeakingQuestionUpdateRequest struct {
	QuestionNumber  *int    `json:"question_number" validate:"omitempty,min=1"`
	Prompt          *string `json:"prompt" validate:"omitempty,min=1"`
	PreparationTime *int    `json:"preparation_time" validate:"omitempty,min=1"`
	ResponseTime    *int    `json:"response_time" validate:"omitempty,min=1"`
}

// ===== READING =====

type ReadingTestCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Difficulty  string  `json:"difficulty" validate:"required,oneof=Easy Intermediate Hard"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type ReadingTestUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Difficulty  *string `json:"difficulty" validate:"omitempty,oneof=Easy Intermediate Hard"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type ReadingPassageCreateRequest struct {
	TestID          uint   `json:"test_id" validate:"required"`
	PassageNumber   int    `json:"passage_number" validate:"required,min=1"`
	Title           string `json:"title" validate:"required,max=200"`
	ContentMarkdown string `json:"content_markdown" validate:"required"`
}

type ReadingPassageUpdateRequest struct {
	PassageNumber   *int    `json:"passage_number" validate:"omitempty,min=1"`
	Title           *string `json:"title" validate:"omitempty,min=1,max=200"`
	ContentMarkdown *string `json:"content_markdown" validate:"omitempty,min=1"`
}

type ReadingQuestionPackCreateRequest struct {
	PassageID         uint        `json:"passage_id" validate:"required"`
	QuestionStart     int         `json:"question_start" validate:"required,min=1"`
	QuestionEnd       int         `json:"question_end" validate:"required,gtefield=QuestionStart"`
	QuestionsMarkdown string      `json:"questions_markdown" validate:"required"`
	CorrectAnswers    interface{} `json:"correct_answers"`
	OrderMatters      *bool       `json:"order_matters"`
}

type ReadingQuestionPackUpdateRequest struct {
	QuestionStart     *int        `json:"question_start" validate:"omitempty,min=1"`
	QuestionEnd       *int        `json:"question_end" validate:"omitempty,min=1"`
	QuestionsMarkdown *string     `json:"questions_markdown" validate:"omitempty,min=1"`
	CorrectAnswers    interface{} `json:"correct_answers"`
	OrderMatters      *bool       `json:"order_matters"`
}

// ===== WRITING =====

type WritingTestCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	TestType    string  `json:"test_type" validate:"required,oneof=Academic General"`
	Difficulty  string  `json:"difficulty" validate:"required,oneof=Easy Intermediate Hard"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type WritingTestUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	TestType    *string `json:"test_type" validate:"omitempty,oneof=Academic General"`
	Difficulty  *string `json:"difficulty" validate:"omitempty,oneof=Easy Intermediate Hard"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type WritingTaskCreateRequest struct {
	TestID           uint   `json:"test_id" validate:"required"`
	TaskNumber       int    `json:"task_number" validate:"required,min=1"`
	TaskType         string `json:"task_type" validate:"required,max=100"`
	PromptMarkdown   string `json:"prompt_markdown" validate:"required"`
	MinWords         int    `json:"min_words" validate:"required,min=1"`
	MaxWords         *int   `json:"max_words" validate:"omitempty,min=1"`
	TimeLimitMinutes *int   `json:"time_limit_minutes" validate:"omitempty,min=1"`
}

type WritingTaskUpdateRequest struct {
	TaskNumber       *int    `json:"task_number" validate:"omitempty,min=1"`
	TaskType         *string `json:"task_type" validate:"omitempty,min=1,max=100"`
	PromptMarkdown   *string `json:"prompt_markdown" validate:"omitempty,min=1"`
	MinWords         *int    `json:"min_words" validate:"omitempty,min=1"`
	MaxWords         *int    `json:"max_words" validate:"omitempty,min=1"`
	TimeLimitMinutes *int    `json:"time_limit_minutes" validate:"omitempty,min=1"`
}

// ===== LISTENING =====

type ListeningTestCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Difficulty  string  `json:"difficulty" validate:"required,oneof=Easy Intermediate Hard"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type ListeningTestUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Difficulty  *string `json:"difficulty" validate:"omitempty,oneof=Easy Intermediate Hard"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type ListeningSectionCreateRequest struct {
	TestID        uint    `json:"test_id" validate:"required"`
	SectionNumber int     `json:"section_number" validate:"required,min=1"`
	SectionType   string  `json:"section_type" validate:"required,max=100"`
	AudioFilePath string  `json:"audio_file_path" validate:"required,max=500"`
	Context       *string `json:"context"`
}

type ListeningSectionUpdateRequest struct {
	SectionNumber *int    `json:"section_number" validate:"omitempty,min=1"`
	SectionType   *string `json:"section_type" validate:"omitempty,min=1,max=100"`
	AudioFilePath *string `json:"audio_file_path" validate:"omitempty,min=1,max=500"`
	Context       *string `json:"context"`
}

type ListeningQuestionPackCreateRequest struct {
	SectionID         uint        `json:"section_id" validate:"required"`
	QuestionStart     int         `json:"question_start" validate:"required,min=1"`
	QuestionEnd       int         `json:"question_end" validate:"required,gtefield=QuestionStart"`
	QuestionsMarkdown string      `json:"questions_markdown" validate:"required"`
	CorrectAnswers    interface{} `json:"correct_answers"`
	ImagePath         *string     `json:"image_path" validate:"omitempty,max=500"`
	OrderMatters      *bool       `json:"order_matters"`
}

type ListeningQuestionPackUpdateRequest struct {
	QuestionStart     *int        `json:"question_start" validate:"omitempty,min=1"`
	QuestionEnd       *int        `json:"question_end" validate:"omitempty,min=1"`
	QuestionsMarkdown *string     `json:"questions_markdown" validate:"omitempty,min=1"`
	CorrectAnswers    interface{} `json:"correct_answers"`
	ImagePath         *string     `json:"image_path" validate:"omitempty,max=500"`
	OrderMatters      *bool       `json:"order_matters"`
}
