package sqlinline

const QInsertEvent = `--sql 7e8fb74d-f3ea-4f4b-9fe5-766ca527379f
insert into events (id, name, slug, event_date, is_active, theme, max_photos)
values ($1, $2, $3, $4, $5, $6, $7);
`

const QUpdateEvent = `--sql 65e288ba-62da-4b2f-b22c-aa1f773eb20c
update events
set name = $2, slug = $3, event_date = $4, is_active = $5, theme = $6, max_photos = $7
where id = $1;
`

const QDeleteEvent = `--sql 3e89f10c-3179-48e8-83f6-45285cb5a96c
delete from events where id = $1;
`

const QSelectEventByID = `--sql c385a025-dedc-4d21-b1f3-2c29077b5d69
select id, name, slug, event_date, is_active, theme, max_photos, created_at
from events
where id = $1;
`

const QSelectEventBySlug = `--sql 1d10b117-ea14-4127-8a38-bd91d8485cfe
select id, name, slug, event_date, is_active, theme, max_photos, created_at
from events
where slug = $1;
`

const QListActiveEvents = `--sql f620f18d-a7cc-4540-89ab-e37d22db90f5
select id, name, slug, event_date, is_active, theme, max_photos, created_at
from events
where is_active
order by event_date desc;
`

const QListEventsEndedBefore = `--sql a324a01b-09c5-407a-b924-12291e7e8cb7
select id, name, slug, event_date, is_active, theme, max_photos, created_at
from events
where not is_active and event_date < $1
order by event_date asc;
`
