package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Create courses table
			CREATE TABLE courses (
				id UUID PRIMARY KEY,
				title TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				duration BIGINT,
				status VARCHAR(16) NOT NULL DEFAULT 'DRAFT' CHECK (status IN ('DRAFT', 'PUBLISHED', 'ARCHIVED')),
				published_at TIMESTAMP WITH TIME ZONE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_courses_status ON courses(status);
			CREATE INDEX idx_courses_created_at ON courses(created_at);
		`,
	}
}
