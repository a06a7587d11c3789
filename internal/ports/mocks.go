package ports

//go:generate mockery --name=EntrySource --with-expecter --output=mocks --outpkg=mocks
//go:generate mockery --name=Sink --with-expecter --output=mocks --outpkg=mocks
//go:generate mockery --name=Clock --with-expecter --output=mocks --outpkg=mocks
//go:generate mockery --name=SecretStore --with-expecter --output=mocks --outpkg=mocks
