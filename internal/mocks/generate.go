package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/league --output domain/league --outpkg leaguemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/lineup --output domain/lineup --outpkg lineupmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Collaborator --dir ../domain/scoring --output domain/scoring --outpkg scoringmock --filename collaborator_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Store --dir ../domain/confirmation --output domain/confirmation --outpkg confirmationmock --filename store_mock.go
