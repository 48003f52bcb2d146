package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL. Clients map these codes
// to their own messages.

const (
	// ==================== 회사 (COMPANY_) ====================
	CompanyNotFound  = "COMPANY_NOT_FOUND" // 회사 없음
	CompanyAmbiguous = "COMPANY_AMBIGUOUS" // 회사 이름 중복 매칭

	// ==================== 태그 (TAG_) ====================
	TagNotFound        = "TAG_NOT_FOUND"        // 태그 없음
	TagAmbiguous       = "TAG_AMBIGUOUS"        // 태그 이름 중복 매칭
	TagAlreadyAttached = "TAG_ALREADY_ATTACHED" // 이미 연결됨
	TagNotAttached     = "TAG_NOT_ATTACHED"     // 연결 기록 없음

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput    = "VALIDATION_INVALID_INPUT"    // 잘못된 입력
	ValidationInvalidID       = "VALIDATION_INVALID_ID"       // 잘못된 ID
	ValidationInvalidLanguage = "VALIDATION_INVALID_LANGUAGE" // 잘못된 언어 코드
	ValidationEmptyText       = "VALIDATION_EMPTY_TEXT"       // 빈 이름

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
)
