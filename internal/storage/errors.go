package storage

import (
	"fmt"

	apperrors "github.com/darkkaiser/sangabriel-catalog/internal/pkg/errors"
)

var (
	// ErrNotFound 키가 없거나 만료되었습니다.
	ErrNotFound = apperrors.New(apperrors.NotFound, "저장소 조회 실패: 키가 존재하지 않습니다")

	// ErrEmptyKey 빈 키로 접근했습니다.
	ErrEmptyKey = apperrors.New(apperrors.InvalidInput, "저장소 접근 실패: 키가 비어 있습니다")

	// ErrPathTraversalDetected 키로부터 만든 경로가 저장소 디렉토리를 벗어났습니다.
	ErrPathTraversalDetected = apperrors.New(apperrors.Internal, "보안 정책 위반: 허용되지 않은 경로 접근 시도로 인해 요청이 차단되었습니다")
)

func newErrUnsupportedDriver(driver string) error {
	return apperrors.Newf(apperrors.InvalidInput, "저장소 초기화 실패: 지원하지 않는 드라이버입니다 (%s)", driver)
}

func newErrPathResolutionFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "보안 검증 실패: 파일 경로를 해석할 수 없습니다")
}

func newErrAbsPathConversionFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "저장소 초기화 실패: 절대 경로 변환 불가")
}

func newErrDirectoryAccessFailed(err error, dir string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("저장소 초기화 실패: 디렉토리 접근 불가 (%s)", dir))
}

func newErrRecordEncodeFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "데이터 처리 실패: 저장 레코드 직렬화 중 오류가 발생했습니다")
}

func newErrRecordDecodeFailed(err error) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, "데이터 처리 실패: 저장 레코드 역직렬화 중 오류가 발생했습니다")
}

func newErrFileReadFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "저장소 조회 실패: 파일 읽기 중 오류가 발생했습니다")
}

func newErrFileRemoveFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "저장소 삭제 실패: 파일 제거 중 오류가 발생했습니다")
}

func newErrTempFileCreationFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "저장 실패: 임시 파일 생성 중 오류가 발생했습니다")
}

func newErrFileWriteFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "저장 실패: 파일 쓰기 중 오류가 발생했습니다")
}

func newErrFileSyncFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "저장 실패: 디스크 동기화 중 오류가 발생했습니다")
}

func newErrFileCloseFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "저장 실패: 파일 닫기 중 오류가 발생했습니다")
}

func newErrFileRenameFailed(err error) error {
	return apperrors.Wrap(err, apperrors.System, "저장 실패: 파일 이름 변경 중 오류가 발생했습니다")
}

func newErrRedisConnectFailed(err error, addr string) error {
	return apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("저장소 초기화 실패: Redis 서버에 연결할 수 없습니다 (%s)", addr))
}

func newErrRedisCommandFailed(err error, cmd string) error {
	return apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("Redis 명령 실패: %s", cmd))
}
